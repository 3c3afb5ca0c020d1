/*
Quill starts an interactive quill engine session.

It reads in a world file and starts the game in the designated starting room.
The interpreter will then start printing what is happening in the game to
stdout and will read user input from stdin until the game is over or the "QUIT"
command is input.

Usage:

	quill [flags]

The flags are:

	--version
		Give the current version of quill and then exit.

	-w, --world FILE
		Use the provided QW file for the world. It may be a data file or a
		manifest that lists other QW files. Defaults to the file "world.qw" in
		the current working directory.

	-c, --config FILE
		Read settings from the given YAML file. Defaults to "quill.yaml" in
		the current working directory. If the file does not exist, default
		settings are used.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	-n, --name NAME
		Use NAME as the name of the player.

	-v, --verbose
		Log at debug level. Has no effect unless a log file is set in the
		config or with the QUILL_LOG_FILE environment variable.

	--debug
		Enable the DEBUG command for inspecting the world and how input is
		understood.

Once a session has started, the user input will be parsed for commands. For an
explanation of the commands, type "HELP" once in a session. To exit the
interpreter, type "QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dekarrin/quill"
	"github.com/dekarrin/quill/internal/config"
	"github.com/dekarrin/quill/internal/logging"
	"github.com/dekarrin/quill/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion = pflag.Bool("version", false, "Give the current version of quill and then exit.")
	flagWorld   = pflag.StringP("world", "w", "world.qw", "The QW world data or manifest file that defines the world.")
	flagConfig  = pflag.StringP("config", "c", "quill.yaml", "The YAML file to read settings from.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagName    = pflag.StringP("name", "n", "", "The name of the player.")
	flagVerbose = pflag.BoolP("verbose", "v", false, "Log at debug level.")
	flagDebug   = pflag.Bool("debug", false, "Enable the DEBUG command.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if *flagVerbose {
		cfg.Logging.Level = "debug"
	}
	if *flagDebug {
		cfg.Debug = true
	}

	log, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer closeLog()
	log.Info("starting", zap.String("version", version.Current), zap.String("world", *flagWorld))

	gameEng, initErr := quill.New(os.Stdin, os.Stdout, *flagWorld, quill.Options{
		ForceDirect: *flagDirect,
		Config:      &cfg,
		Log:         log,
		PlayerName:  *flagName,
	})
	if initErr != nil {
		log.Error("could not start", zap.Error(initErr))
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	if err := gameEng.RunUntilQuit(); err != nil {
		log.Error("game ended with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
