package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.SkipBits == 0 {
		t.Error("expected SkipBits to be positive")
	}
	if cfg.TargetVocabSize <= int(cfg.FirstEmitID) {
		t.Error("expected TargetVocabSize to exceed FirstEmitID")
	}
}

func TestResolveRejectsBadSkipBits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipBits = 0

	if _, err := cfg.Resolve(); err == nil {
		t.Error("expected Resolve to reject SkipBits of 0")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetVocabSize = 4096

	path := filepath.Join(t.TempDir(), "config.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.TargetVocabSize != 4096 {
		t.Errorf("expected TargetVocabSize 4096, got %d", loaded.TargetVocabSize)
	}
	if loaded.SkipBits != cfg.SkipBits {
		t.Errorf("expected SkipBits %d, got %d", cfg.SkipBits, loaded.SkipBits)
	}
}
