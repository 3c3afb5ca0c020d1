package command

import (
	"bufio"
	"fmt"
	"strings"
)

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single user command. It will block until one is
	// ready. If there is an error or output is at end (EOF), the returned
	// string will be empty, otherwise it will always be non-empty.
	//
	// When error is io.EOF, string will always be empty. If EOF was encountered
	// on a call but some input was received, the input will be returned and
	// error will be nil, and the next call to ReadCommand will return "",
	// io.EOF.
	ReadCommand() (string, error)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

// Get obtains a single line of command input from the provided Reader. If
// prompt is not empty, it is written to ostream first. Lines that are blank
// are skipped. Whitespace is collapsed in the returned line.
//
// Note that this function does not check if the command can be understood;
// that is up to a Dispatcher.
func Get(cmdStream Reader, ostream *bufio.Writer, prompt string) (string, error) {
	if prompt != "" {
		if _, err := ostream.WriteString(prompt + "\n"); err != nil {
			return "", fmt.Errorf("could not write output: %w", err)
		}
		if err := ostream.Flush(); err != nil {
			return "", fmt.Errorf("could not flush output: %w", err)
		}
	}

	for {
		input, err := cmdStream.ReadCommand()
		if err != nil {
			return "", fmt.Errorf("could not get input: %w", err)
		}

		line := strings.Join(strings.Fields(input), " ")
		if line != "" {
			return line, nil
		}
	}
}
