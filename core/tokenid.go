package core

// TokenId is an unsigned integer wide enough to hold the final vocabulary
// size plus a reserved high-bit skip field. The reference width is 32
// bits; the value range actually usable for token ids is narrower,
// governed by a Width (see width.go).
type TokenId = uint32

// NoToken is the sentinel "no value" TokenId used where callers need an
// explicit absent marker distinct from a valid id (id 0 is a legal token).
const NoToken TokenId = ^TokenId(0)
