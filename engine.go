// Package quill contains a CLI-driven engine for getting commands and
// advancing the game state continuously until the user quits.
package quill

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
	"go.uber.org/zap"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/config"
	"github.com/dekarrin/quill/internal/game"
	"github.com/dekarrin/quill/internal/input"
	"github.com/dekarrin/quill/internal/qerrors"
	"github.com/dekarrin/quill/internal/qw"
)

// Options are the settings of a new Engine.
type Options struct {
	// ForceDirect reads input directly from the input stream even when
	// readline could be used.
	ForceDirect bool

	// Config tunes the interpreter, output, and debug command. If nil,
	// config.Default is used.
	Config *config.Config

	// Log receives diagnostic output. If nil, nothing is logged.
	Log *zap.Logger

	// PlayerName is the name of the player. If blank, game.DefaultPlayerName
	// is used.
	PlayerName string

	// Seed seeds the choice of phrasing. If zero, the current time is used.
	Seed int64
}

// Engine contains the things needed to run a game from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	state       *game.State
	title       string
	intro       string
	in          input.Reader
	out         *bufio.Writer
	width       int
	forceDirect bool
	running     bool
	log         *zap.Logger
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and
// a buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is only used when both are the
// console and opts.ForceDirect is not set.
func New(inputStream io.Reader, outputStream io.Writer, worldFilePath string, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	world, err := qw.Load(worldFilePath)
	if err != nil {
		return nil, err
	}
	opts.Log.Info("loaded world",
		zap.String("file", worldFilePath),
		zap.String("title", world.Title),
		zap.Int("rooms", len(world.Rooms)),
	)

	eng := &Engine{
		title:       world.Title,
		intro:       world.Intro,
		out:         bufio.NewWriter(outputStream),
		width:       cfg.Output.Width,
		forceDirect: opts.ForceDirect,
		log:         opts.Log,
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	var icr *input.InteractiveCommandReader
	if useReadline {
		icr, err = input.NewInteractiveReader(cfg.Output.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
		eng.in = icr
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	ioDev := eng.ioDevice(icr)

	state, err := game.New(world, ioDev, game.Options{
		PlayerName: opts.PlayerName,
		Resolver:   cfg.NewResolver(),
		SelfWords:  cfg.Resolver.SelfWords,
		MaxSteps:   cfg.Parser.MaxSteps,
		MaxTies:    cfg.Parser.MaxTies,
		Seed:       opts.Seed,
		Log:        opts.Log,
		Debug:      cfg.Debug,
	})
	if err != nil {
		eng.in.Close()
		return nil, fmt.Errorf("initializing game engine: %w", err)
	}
	eng.state = state

	return eng, nil
}

// ioDevice creates the IODevice the game uses to talk to the player. If icr
// is not nil, prompts are shown through it instead of being written to the
// output stream.
func (eng *Engine) ioDevice(icr *input.InteractiveCommandReader) game.IODevice {
	outFunc := func(s string, a ...interface{}) error {
		s = fmt.Sprintf(s, a...)
		if _, err := eng.out.WriteString(s); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
		if err := eng.out.Flush(); err != nil {
			return fmt.Errorf("could not flush output: %w", err)
		}
		return nil
	}
	inputFunc := func(prompt string) (string, error) {
		var oldPrompt string
		if icr != nil {
			oldPrompt = icr.GetPrompt()
			icr.SetPrompt(prompt)
		} else if prompt != "" {
			if err := outFunc("%s", prompt); err != nil {
				return "", err
			}
		}
		eng.in.AllowBlank(true)
		readInput, err := eng.in.ReadCommand()
		eng.in.AllowBlank(false)
		if icr != nil {
			icr.SetPrompt(oldPrompt)
		}
		return readInput, err
	}

	return game.IODevice{
		Width:  eng.width,
		Output: outFunc,
		Input:  inputFunc,
		InputInt: func(prompt string) (int, error) {
			for {
				inputVal, err := inputFunc(prompt)
				if err != nil {
					return 0, err
				}
				intVal, err := strconv.Atoi(strings.TrimSpace(inputVal))
				if err == nil {
					return intVal, nil
				}

				msg := "Please enter a number\n"
				if strings.Contains(inputVal, ".") {
					msg = "Please enter a number without a decimal dot\n"
				}
				if err := outFunc(msg); err != nil {
					return 0, err
				}
			}
		},
	}
}

// State returns the game being run.
func (eng *Engine) State() *game.State {
	return eng.state
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	// TODO: make Close on a running engine stop it. The command reader would
	// need a way to be told to go EOF immediately.
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}
	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the game until the player quits or input runs out.
func (eng *Engine) RunUntilQuit() error {
	if err := eng.write(eng.introduction()); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := command.Get(eng.in, eng.out, "")
		if err != nil {
			if errors.Is(err, io.EOF) {
				eng.log.Debug("input ended")
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		err = eng.state.Advance(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				eng.log.Debug("input ended during prompt")
				break
			}
			if !qerrors.IsInterpreter(err) {
				eng.log.Error("command failed", zap.String("input", line), zap.Error(err))
			}

			consoleMessage := qerrors.GameMessage(err)
			consoleMessage = rosed.Edit(consoleMessage).Wrap(eng.width).String()
			if err := eng.write("\n" + consoleMessage + "\n\n"); err != nil {
				return err
			}
		}

		if eng.state.Quitting() {
			eng.running = false
		}
	}

	return eng.write("Goodbye\n")
}

// introduction gives the banner, intro text, and first room description shown
// when the game starts.
func (eng *Engine) introduction() string {
	title := eng.title
	if title == "" {
		title = "Quill"
	}

	var sb strings.Builder
	banner := "Welcome to " + title
	sb.WriteString(banner + "\n")
	if eng.forceDirect {
		sb.WriteString("(direct input mode)\n")
	}
	sb.WriteString(strings.Repeat("=", len(banner)) + "\n\n")

	if eng.intro != "" {
		sb.WriteString(rosed.Edit(eng.intro).Wrap(eng.width).String())
		sb.WriteString("\n\n")
	}
	sb.WriteString(eng.state.Look())
	sb.WriteString("\n\n")
	return sb.String()
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
