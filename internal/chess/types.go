// Package chess provides the piece model, move generation and board state for
// hexagonal chess.
package chess

import (
	"fmt"
	"strings"
	"unicode"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// MarshalText encodes the colour as its name.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a colour name.
func (c *Colour) UnmarshalText(b []byte) error {
	v, err := ParseColour(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColour parses "white"/"w" or "black"/"b", ignoring case.
func ParseColour(s string) (Colour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return Black, fmt.Errorf("unknown colour %q", s)
}

// Kind represents a piece type.
type Kind int

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
	Chancellor // Rook + Knight
	Archbishop // Bishop + Knight
)

var kindNames = [...]string{"None", "King", "Queen", "Rook", "Bishop", "Knight", "Pawn", "Chancellor", "Archbishop"}

// Letters are the upper-case piece letters, indexed by Kind.
const kindLetters = " KQRBNPCA"

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	if k > NoKind && int(k) < len(kindLetters) {
		return kindLetters[k]
	}
	return '?'
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name or letter.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind accepts a piece letter (K, Q, R, B, N, P, C, A) or a full name,
// ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if i := strings.IndexByte(kindLetters, byte(unicode.ToUpper(rune(s[0])))); i > 0 {
			return Kind(i), nil
		}
	}
	for i, name := range kindNames {
		if i > 0 && strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return NoKind, fmt.Errorf("unknown piece kind %q", s)
}

// Piece is a coloured piece. The zero value is not a piece; absence is always
// reported separately with a boolean.
type Piece struct {
	Kind   Kind   `json:"kind"`
	Colour Colour `json:"colour"`
}

// W returns a white piece of the given kind.
func W(k Kind) Piece {
	return Piece{Kind: k, Colour: White}
}

// B returns a black piece of the given kind.
func B(k Kind) Piece {
	return Piece{Kind: k, Colour: Black}
}

// Symbol returns the piece letter, upper case for White and lower case for Black.
func (p Piece) Symbol() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		return byte(unicode.ToLower(rune(l)))
	}
	return l
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String()
}

// ParseSymbol is the inverse of Symbol.
func ParseSymbol(b byte) (Piece, bool) {
	i := strings.IndexByte(kindLetters, byte(unicode.ToUpper(rune(b))))
	if i <= 0 {
		return Piece{}, false
	}
	colour := White
	if unicode.IsLower(rune(b)) {
		colour = Black
	}
	return Piece{Kind: Kind(i), Colour: colour}, true
}
