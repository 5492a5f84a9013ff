// Package errors provides sentinel errors and error types for the hex chess engine.
// It defines the rejected-action conditions of the board and game layers and
// structured error types that preserve context while allowing inspection with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for board-level failures.
var (
	// ErrInvalidCoordinate indicates a reference to a cell that is not on the board.
	ErrInvalidCoordinate = errors.New("invalid coordinate for this board")

	// ErrNoPieceAtCoordinate indicates an empty source cell.
	ErrNoPieceAtCoordinate = errors.New("no piece at the specified coordinate")

	// ErrInvalidMove indicates a destination the piece cannot reach.
	ErrInvalidMove = errors.New("invalid move")
)

// Sentinel errors for game-level failures.
var (
	// ErrNotYourPiece indicates an attempt to move the opponent's piece.
	ErrNotYourPiece = errors.New("not your piece")

	// ErrMoveWouldPutKingInCheck indicates a move that leaves the mover's king attacked.
	ErrMoveWouldPutKingInCheck = errors.New("move would put king in check")

	// ErrNoMovesToUndo indicates an undo on an empty history.
	ErrNoMovesToUndo = errors.New("no moves to undo")

	// ErrUnsupportedVariant indicates a catalogued variant that cannot be played yet.
	ErrUnsupportedVariant = errors.New("unsupported variant")
)

// Sentinel errors for the catalogue, configuration and input layers.
var (
	// ErrUnknownVariant indicates a lookup of a name that is not registered.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrDuplicateVariant indicates a second registration under the same name.
	ErrDuplicateVariant = errors.New("duplicate variant")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrParseFailure indicates malformed move text.
	ErrParseFailure = errors.New("parse failure")

	// ErrScript indicates a variant script that failed to run or is malformed.
	ErrScript = errors.New("variant script error")
)

// BoardError wraps a board-level failure with the operation and the cell involved.
type BoardError struct {
	Op    string // "place", "move", ...
	Coord string // The offending cell, formatted by the caller
	Err   error  // The underlying sentinel
}

// Error returns a message naming the operation and the cell.
func (e *BoardError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Coord != "" {
		parts = append(parts, e.Coord)
	}
	context := strings.Join(parts, " ")

	if e.Err == nil {
		return "board error: " + context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error.
func (e *BoardError) Unwrap() error {
	return e.Err
}

// MoveError wraps a rejected move with the requested cells and the ply it was
// attempted at. When a board error propagates, Err is the *BoardError.
type MoveError struct {
	Err  error  // The underlying error
	From string // Source cell (if applicable)
	To   string // Destination cell (if applicable)
	Ply  int    // 1-based ply the move would have been (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s-%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a move text or script error with location context.
type ParseError struct {
	Err    error  // The underlying error
	File   string // Source file name
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Got    string // The offending text
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" || e.Line > 0 {
		loc := e.File
		if e.Line > 0 {
			if loc != "" {
				loc += ":"
			}
			loc += fmt.Sprintf("%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}

	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether err matches target, re-exported so callers importing
// this package need not also import the standard errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
