// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// Rule errors cover every ordinary precondition violation. They are
// surfaced to transport handlers as a false/empty outcome; only
// persistence failures abort an operation with a real error.
var (
	// ErrNotFound: unknown game, player or card id.
	ErrNotFound = errors.New("not found")

	// ErrIllegalMove: not your turn, card not playable, bad color
	// selection, or a draw attempted while a legal play exists.
	ErrIllegalMove = errors.New("illegal move")

	// ErrConflict: game not active, already started, already ended, at
	// capacity, below minimum players, or creation refused.
	ErrConflict = errors.New("game state conflict")
)

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func illegalMove(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// IsRuleError reports whether err is an ordinary rule violation rather
// than a persistence failure.
func IsRuleError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrIllegalMove) ||
		errors.Is(err, ErrConflict)
}
