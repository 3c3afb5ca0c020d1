// Package qerrors holds errors that carry a message meant for the player in
// addition to the usual technical description.
package qerrors

import (
	"errors"
	"fmt"
)

// interpreterError is an error caused by attempting to interpret input. Either
// the input could not be understood or it specifies doing something that is
// impossible or not allowed at the current time.
//
// interpreterError includes a human-readable message to show to the player as
// well as a typical more technical "error message" style message.
type interpreterError struct {
	msg   string
	human string
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed in-game to describe
// the error.
func (e *interpreterError) GameMessage() string {
	return e.human
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Interpreter returns a new interpreter error that has both the message to
// show the player and the technical description of the error.
func Interpreter(game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", game)
	}
	return &interpreterError{
		msg:   technical,
		human: game,
	}
}

// Interpreterf returns a new interpreter error that has a message to show to
// the player and an automatically generated Error() description. The arguments
// given are the format string and the arguments to the format string.
func Interpreterf(gameFormat string, a ...interface{}) error {
	gameMessage := fmt.Sprintf(gameFormat, a...)
	return Interpreter(gameMessage, "")
}

// WrapInterpreter returns a new interpreter error that has both the message
// to show the player and the technical description of the error, and that
// wraps the given error.
func WrapInterpreter(e error, game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", game)
	}
	return &interpreterError{
		msg:   technical,
		human: game,
		wrap:  e,
	}
}

// WrapInterpreterf returns a new interpreter error that has both the message
// to show the player and an automatically generated Error() description, and
// that wraps the given error.
func WrapInterpreterf(e error, gameFormat string, a ...interface{}) error {
	gameMessage := fmt.Sprintf(gameFormat, a...)
	return WrapInterpreter(e, gameMessage, "")
}

// IsInterpreter returns whether err is or wraps an interpreter error.
func IsInterpreter(err error) bool {
	var intErr *interpreterError
	return errors.As(err, &intErr)
}

// GameMessage gets the message to display to the console for the given error.
// If it is or wraps an interpreter error, its game message is returned.
// Otherwise, err.Error() is returned.
func GameMessage(err error) string {
	var intErr *interpreterError
	if errors.As(err, &intErr) {
		return intErr.GameMessage()
	}
	return err.Error()
}
