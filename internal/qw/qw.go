// Package qw has functions for loading game data using the QW (Quill World)
// file format, a TOML-based format that is used to define game worlds for the
// engine to run.
package qw

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/quill/internal/game"
)

// FormatName is the value that the "format" key of every QW file must have.
const FormatName = "QUILL"

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recusion level of
	// MaxManifestRecursionDepth is reached and an additional Manifest is then
	// specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the original
	// manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from a QW Manifest file.
type Manifest struct {
	Files []string
}

// FileInfo contains the essential information all QW format files must
// contain. Only the top-level table of a file is read for it.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Load loads a world up from the given QW file. The file's type is
// auto-detected; it can either be "DATA" type or "MANIFEST" type. If it's
// manifest type, the files listed in it relative to it will also be loaded,
// recursively. All files included are combined into one single set of data
// before being checked.
func Load(path string) (game.World, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return game.World{}, err
	}

	return parseWorldData(unmarshaled)
}

// decodeManifest reads manifest data from the bytes of a QW manifest file.
func decodeManifest(data []byte) (Manifest, error) {
	unmarshaled, err := unmarshalManifest(data)
	if err != nil {
		return Manifest{}, err
	}
	return parseManifest(unmarshaled)
}

// Parse reads a world from the bytes of a QW data file.
func Parse(data []byte) (game.World, error) {
	unmarshaled, err := unmarshalWorldData(data)
	if err != nil {
		return game.World{}, err
	}

	return parseWorldData(unmarshaled)
}

// scanFileInfo takes the given data bytes and attempts to read the QW
// format common header info from it. The bytes are read up to the first
// instance of a table definition header and those bytes are parsed for the
// info. If there is an error reading the info, returns a non-nil error.
func scanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-level table
	topLevelEnd := -1
	onNewLine := true
	for b := range data {
		if onNewLine && data[b] == '[' {
			topLevelEnd = b
			break
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	if err := toml.Unmarshal(scanData, &info); err != nil {
		return info, fmt.Errorf("read header: %w", err)
	}
	return info, nil
}
