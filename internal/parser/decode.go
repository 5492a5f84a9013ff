package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// MoveText is one entry of a move list.
type MoveText struct {
	From    hex.Coord
	To      hex.Coord
	Capture bool // written with 'x'
	Undo    bool // take back the previous move
	Text    string
	Line    int
	Column  int
}

// String returns the text the move was written as.
func (m MoveText) String() string {
	if m.Undo {
		return "undo"
	}
	return m.Text
}

// ParseCoord decodes a cell written as a Gliński name ("f5") or in axial form
// ("0,1" or "(0,1)").
func ParseCoord(s string) (hex.Coord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return hex.Coord{}, fmt.Errorf("empty cell")
	}
	if isLetter(s[0]) {
		return hex.ParseCell(s)
	}
	c, n, err := scanAxial(s)
	if err != nil {
		return hex.Coord{}, err
	}
	if n != len(s) {
		return hex.Coord{}, fmt.Errorf("cell %q: trailing text", s)
	}
	return c, nil
}

// DecodeMove decodes "from-to" or "fromxto".
func DecodeMove(s string) (MoveText, error) {
	m := MoveText{Text: s}

	from, n, err := scanCoord(s)
	if err != nil {
		return m, err
	}
	if n >= len(s) {
		return m, fmt.Errorf("move %q: missing destination", s)
	}
	switch s[n] {
	case '-':
	case 'x', 'X', ':':
		m.Capture = true
	default:
		return m, fmt.Errorf("move %q: expected '-' or 'x' after %q", s, s[:n])
	}

	to, k, err := scanCoord(s[n+1:])
	if err != nil {
		return m, err
	}
	if n+1+k != len(s) {
		return m, fmt.Errorf("move %q: trailing text", s)
	}
	m.From, m.To = from, to
	return m, nil
}

// scanCoord reads one cell from the front of s and returns it with the number
// of bytes used.
func scanCoord(s string) (hex.Coord, int, error) {
	if s == "" {
		return hex.Coord{}, 0, fmt.Errorf("missing cell")
	}
	if !isLetter(s[0]) {
		return scanAxial(s)
	}
	n := 1
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	c, err := hex.ParseCell(s[:n])
	return c, n, err
}

// scanAxial reads "q,r" or "(q,r)" from the front of s.
func scanAxial(s string) (hex.Coord, int, error) {
	i := 0
	paren := s[0] == '('
	if paren {
		i++
	}
	q, n, err := scanInt(s[i:])
	if err != nil {
		return hex.Coord{}, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	i += n
	if i >= len(s) || s[i] != ',' {
		return hex.Coord{}, 0, fmt.Errorf("cell %q: expected ','", s)
	}
	i++
	r, n, err := scanInt(s[i:])
	if err != nil {
		return hex.Coord{}, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	i += n
	if paren {
		if i >= len(s) || s[i] != ')' {
			return hex.Coord{}, 0, fmt.Errorf("cell %q: expected ')'", s)
		}
		i++
	}
	return hex.New(q, r), i, nil
}

// scanInt reads an optionally signed integer from the front of s.
func scanInt(s string) (int, int, error) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, fmt.Errorf("expected a number")
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0, err
	}
	return v, i, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
