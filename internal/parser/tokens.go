// Package parser reads hex chess move lists: optional [Name "value"] tags
// followed by moves written as "f5-f6", "f5xf6", "0,1-0,0" or "(0,1)-(0,0)".
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the parser
	EOFToken TokenType = iota
	TagToken
	CommentToken
	MoveNumber
	MoveToken
	UndoToken
	TerminatingResult

	// Internal tokens used for identification
	Whitespace
	TagStart
	CommentStart
	LineComment
	Word
	NoToken
	ErrorToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagToken:          "TAG",
	CommentToken:      "COMMENT",
	MoveNumber:        "MOVE_NUMBER",
	MoveToken:         "MOVE",
	UndoToken:         "UNDO",
	TerminatingResult: "TERMINATING_RESULT",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	CommentStart:      "COMMENT_START",
	LineComment:       "LINE_COMMENT",
	Word:              "WORD",
	NoToken:           "NO_TOKEN",
	ErrorToken:        "ERROR_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// TokenString holds the tag name, comment, result or raw move text.
	TokenString string

	// TagValue is the quoted value of a tag.
	TagValue string

	// Line and column for error reporting
	Line   int
	Column int
}
