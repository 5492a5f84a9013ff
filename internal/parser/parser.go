package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// GameRecord is one game read from a move list.
type GameRecord struct {
	Tags      map[string]string
	Moves     []MoveText
	Result    string
	Source    string
	StartLine int
	EndLine   int
}

// Tag returns the value of a tag, or "" if it is absent.
func (g *GameRecord) Tag(name string) string {
	return g.Tags[name]
}

// Variant returns the Variant tag.
func (g *GameRecord) Variant() string {
	return g.Tags["Variant"]
}

// Parser parses move lists into GameRecords. A game is a run of tags
// followed by moves; a tag after a move, or a result token, ends a game.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	source       string
}

// NewParser creates a new parser for the given reader. source names the input
// in error messages.
func NewParser(r io.Reader, source string) *Parser {
	return &Parser{
		lexer:  NewLexer(r),
		source: source,
	}
}

func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available. After an error the rest of the
// broken game is skipped, so parsing can continue with the next one.
func (p *Parser) ParseGame() (*GameRecord, error) {
	if p.currentToken == nil {
		p.nextToken()
	}
	p.skipComments()
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	game := &GameRecord{
		Tags:      make(map[string]string),
		Source:    p.source,
		StartLine: p.currentToken.Line,
	}

	for p.currentToken.Type == TagToken {
		game.Tags[p.currentToken.TokenString] = p.currentToken.TagValue
		p.nextToken()
		p.skipComments()
	}

	for {
		tok := p.currentToken
		switch tok.Type {
		case MoveNumber, CommentToken:
			p.nextToken()
		case UndoToken:
			game.Moves = append(game.Moves, MoveText{Undo: true, Text: tok.TokenString, Line: tok.Line, Column: tok.Column})
			p.nextToken()
		case MoveToken:
			m, err := DecodeMove(tok.TokenString)
			if err != nil {
				perr := p.errorAt(tok, err)
				p.skipToNextGame()
				return nil, perr
			}
			m.Line, m.Column = tok.Line, tok.Column
			game.Moves = append(game.Moves, m)
			p.nextToken()
		case TerminatingResult:
			game.Result = tok.TokenString
			game.EndLine = tok.Line
			p.nextToken()
			return game, nil
		case ErrorToken:
			perr := p.errorAt(tok, nil)
			p.skipToNextGame()
			return nil, perr
		default:
			// EOF or the tags of the next game.
			game.EndLine = p.lexer.LineNumber()
			return game, nil
		}
	}
}

// ParseAllGames parses every game in the input. It stops at the first error,
// returning the games read so far.
func (p *Parser) ParseAllGames() ([]*GameRecord, error) {
	var games []*GameRecord
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			return games, nil
		}
		games = append(games, game)
	}
}

func (p *Parser) skipComments() {
	for p.currentToken.Type == CommentToken {
		p.nextToken()
	}
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken:
			return
		case TerminatingResult:
			p.nextToken()
			return
		default:
			p.nextToken()
		}
	}
}

func (p *Parser) errorAt(tok *Token, cause error) error {
	err := errors.ErrParseFailure
	if cause != nil {
		err = fmt.Errorf("%w: %v", errors.ErrParseFailure, cause)
	}
	return &errors.ParseError{
		Err:    err,
		File:   p.source,
		Line:   tok.Line,
		Column: tok.Column,
		Got:    tok.TokenString,
	}
}

// ParseMoves parses a whitespace-separated move list with no tags, as typed
// on a command line.
func ParseMoves(s string) ([]MoveText, error) {
	game, err := NewParser(strings.NewReader(s), "").ParseGame()
	if err != nil || game == nil {
		return nil, err
	}
	return game.Moves, nil
}
