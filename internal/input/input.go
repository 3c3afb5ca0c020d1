// Package input reads player commands from a terminal or any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/quill/internal/command"
)

// DefaultPrompt is shown before each command is read interactively.
const DefaultPrompt = "> "

// Reader is a command.Reader that can also be told to return blank lines,
// which is needed when asking the player a question that has a default
// answer.
type Reader interface {
	command.Reader

	// AllowBlank sets whether ReadCommand returns blank lines.
	AllowBlank(allow bool)
}

var (
	_ Reader = (*DirectCommandReader)(nil)
	_ Reader = (*InteractiveCommandReader)(nil)
)

// DirectCommandReader reads commands line by line from any io.Reader. It does
// not strip control or escape sequences, so it is best suited to piped input
// and tests.
//
// Create one with [NewDirectReader].
type DirectCommandReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveCommandReader reads commands from the terminal through readline,
// which handles line editing and keeps a command history. It should only be
// used when stdin and stdout are both a TTY.
//
// Create one with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a DirectCommandReader that buffers r.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader starts readline on the terminal. If historyFile is not
// empty, command history is saved to and loaded from it. Close must be called
// on the returned reader to restore the terminal.
func NewInteractiveReader(historyFile string) (*InteractiveCommandReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            DefaultPrompt,
		HistoryFile:       historyFile,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close does nothing; it exists so DirectCommandReader is a command.Reader.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// Close shuts down readline.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand returns the next line with surrounding whitespace removed. Blank
// lines are skipped unless AllowBlank(true) was called.
//
// A final line with no newline is still returned. Once input is used up, the
// returned string is empty and the error is io.EOF.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	return readLine(func() (string, error) {
		return dcr.r.ReadString('\n')
	}, dcr.blanksAllowed)
}

// ReadCommand returns the next line typed at the terminal with surrounding
// whitespace removed. Blank lines are skipped unless AllowBlank(true) was
// called.
//
// Ctrl-D on an empty line gives io.EOF and Ctrl-C gives readline.ErrInterrupt.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	return readLine(icr.rl.Readline, icr.blanksAllowed)
}

// readLine calls next until it gives a non-blank line, or any line at all if
// blanks are allowed. A line that arrives along with io.EOF is returned
// without the error.
func readLine(next func() (string, error), blanksAllowed bool) (string, error) {
	for {
		line, err := next()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || blanksAllowed {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt changes the prompt shown before each line.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (icr *InteractiveCommandReader) GetPrompt() string {
	return icr.prompt
}
