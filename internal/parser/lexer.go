package parser

import (
	"bufio"
	"io"
	"strings"
)

// Lexer tokenizes move list input.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
}

// Character classification table
var chTab [256]TokenType

func init() {
	for i := range chTab {
		chTab[i] = Word
	}
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}
	chTab['['] = TagStart
	chTab['{'] = CommentStart
	chTab['#'] = LineComment
	chTab[';'] = LineComment
	chTab['%'] = LineComment
	chTab[']'] = ErrorToken
	chTab['}'] = ErrorToken
	chTab['"'] = ErrorToken
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		l.eof = true
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return &Token{Type: EOFToken, Line: l.lineNum}
			}
			continue
		}

		start := l.pos
		ch := l.currentChar()
		l.advance()

		var tok *Token
		switch chTab[ch] {
		case Whitespace:
			continue
		case LineComment:
			text := strings.TrimSpace(l.line[l.pos:])
			l.pos = len(l.line)
			tok = &Token{Type: CommentToken, TokenString: text}
		case CommentStart:
			tok = l.gatherComment()
		case TagStart:
			tok = l.gatherTag(start)
		case ErrorToken:
			tok = &Token{Type: ErrorToken, TokenString: string(ch)}
		default:
			tok = l.gatherWord(start)
		}
		if tok.Type == NoToken {
			continue
		}
		if tok.Line == 0 {
			tok.Line = l.lineNum
			tok.Column = start + 1
		}
		return tok
	}
}

// gatherComment collects a {...} comment, which may span lines.
func (l *Lexer) gatherComment() *Token {
	line, col := l.lineNum, l.pos
	var sb strings.Builder
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return &Token{Type: ErrorToken, TokenString: "{", Line: line, Column: col}
			}
			sb.WriteByte(' ')
			continue
		}
		ch := l.currentChar()
		l.advance()
		if ch == '}' {
			return &Token{Type: CommentToken, TokenString: strings.TrimSpace(sb.String()), Line: line, Column: col}
		}
		sb.WriteByte(ch)
	}
}

// gatherTag parses [Name "value"] on a single line.
func (l *Lexer) gatherTag(start int) *Token {
	rest := l.line[l.pos:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		l.pos = len(l.line)
		return &Token{Type: ErrorToken, TokenString: strings.TrimSpace(l.line[start:]), Line: l.lineNum, Column: start + 1}
	}
	body := strings.TrimSpace(rest[:end])
	l.pos += end + 1

	name, value, ok := strings.Cut(body, " ")
	value = strings.TrimSpace(value)
	if !ok || name == "" || len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return &Token{Type: ErrorToken, TokenString: "[" + body + "]", Line: l.lineNum, Column: start + 1}
	}
	return &Token{Type: TagToken, TokenString: name, TagValue: value[1 : len(value)-1], Line: l.lineNum, Column: start + 1}
}

// gatherWord collects a run of word characters and classifies it.
func (l *Lexer) gatherWord(start int) *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Word {
		l.advance()
	}
	text := l.line[start:l.pos]

	// A move number may be glued to the move: "1.f5-f6".
	if n := moveNumberPrefix(text); n > 0 {
		if n == len(text) {
			return &Token{Type: MoveNumber, TokenString: text}
		}
		l.pos = start + n
		return &Token{Type: MoveNumber, TokenString: text[:n]}
	}

	switch {
	case strings.EqualFold(text, "undo"):
		return &Token{Type: UndoToken, TokenString: text}
	case text == "*" || text == "1-0" || text == "0-1" || text == "1/2-1/2":
		return &Token{Type: TerminatingResult, TokenString: text}
	}
	return &Token{Type: MoveToken, TokenString: text}
}

// moveNumberPrefix returns the length of a leading "12." or "12..." in s, or 0.
func moveNumberPrefix(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return 0
	}
	for i < len(s) && s[i] == '.' {
		i++
	}
	return i
}
