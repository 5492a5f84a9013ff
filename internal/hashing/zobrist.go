package hashing

import (
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// Keys are derived on demand from splitmix64 rather than stored in tables, as
// boards have no fixed size. They are identical on every run.
const (
	pieceSalt   uint64 = 0x51ed270b27a3c1f5
	blackToMove uint64 = 0xf8a3d2c1b4e59607
)

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// PieceKey returns the Zobrist key of piece p standing on c.
func PieceKey(c hex.Coord, p chess.Piece) uint64 {
	seed := uint64(uint16(int16(c.Q)))<<48 |
		uint64(uint16(int16(c.R)))<<32 |
		uint64(p.Kind)<<8 |
		uint64(p.Colour)
	return splitmix64(seed ^ pieceSalt)
}

// SideKey returns the key folded in when the given side is to move.
func SideKey(toMove chess.Colour) uint64 {
	if toMove == chess.Black {
		return blackToMove
	}
	return 0
}

// Zobrist returns the Zobrist hash of a position: the pieces on the board and
// the side to move.
func Zobrist(board *chess.Board, toMove chess.Colour) uint64 {
	h := SideKey(toMove)
	for c, p := range board.Pieces() {
		h ^= PieceKey(c, p)
	}
	return h
}

// UpdateZobrist returns h after a move of p from from to to, optionally
// capturing captured, with the side to move flipped.
func UpdateZobrist(h uint64, from, to hex.Coord, p chess.Piece, captured *chess.Piece) uint64 {
	h ^= PieceKey(from, p)
	if captured != nil {
		h ^= PieceKey(to, *captured)
	}
	h ^= PieceKey(to, p)
	return h ^ blackToMove
}

// WeakHash is a cheap order-sensitive checksum of the pieces on a board, used
// as a second opinion when Zobrist hashes match.
func WeakHash(board *chess.Board) uint32 {
	var h uint32
	for i, c := range board.Coords() {
		p, ok := board.PieceAt(c)
		if !ok {
			continue
		}
		h = h*31 + uint32(i+1)*uint32(int(p.Kind)*2+int(p.Colour)+1)
	}
	return h
}
