package bot

import (
	"errors"
	"fmt"
)

// Dispatch errors
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUnknownComponent = errors.New("unknown component")
	ErrForbidden        = errors.New("you do not have permission to run this command")
	ErrNoGuild          = errors.New("this command can only be used in a server")
)

// ArgumentError reports an invalid or missing command option
type ArgumentError struct {
	Option string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Option, e.Reason)
}

// IsArgumentError reports whether err is an ArgumentError
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
