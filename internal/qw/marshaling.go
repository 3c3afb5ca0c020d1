package qw

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifStack is for two reasons ->
// * detect circular deps (not an error, but we need to know to avoid them)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (topLevelWorldData, error) {
	path = filepath.Clean(path)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	fileInfo, err := scanFileInfo(fileData)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if !strings.EqualFold(fileInfo.Format, FormatName) {
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, FormatName)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case "DATA":
		unmarshaled, err := unmarshalWorldData(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("world data file %q: %w", path, err)
		}
		return unmarshaled, nil
	case "MANIFEST":
		// check the stack to be sure we havent recursed too far and to be sure
		// we aren't about to re-scan a circular-ref'd manifest file we've
		// already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := decodeManifest(fileData)
		if err != nil {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// an empty manifest is only a problem for the very first manifest.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		// copy the manif stack into a new value and add self to it for
		// recursive calls
		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		var combined topLevelWorldData
		processedFiles := 0
		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			included, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				// a circular reference is skipped, not failed.
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}
				return topLevelWorldData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if err := combined.merge(included); err != nil {
				return topLevelWorldData{}, fmt.Errorf("file %q: %w", includedFilePath, err)
			}
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			// the first file is a manifest and gave no valid definitions.
			return combined, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return combined, nil

	default:
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either \"DATA\" or \"MANIFEST\"", path)
	}
}

// merge adds the definitions in other to tld. A world-level setting may only
// be given by one of them.
func (tld *topLevelWorldData) merge(other topLevelWorldData) error {
	w, ow := &tld.World, other.World

	if ow.Start != "" {
		if w.Start != "" {
			return fmt.Errorf("duplicate start; start has already been defined as %q", w.Start)
		}
		w.Start = ow.Start
	}
	if ow.Title != "" {
		if w.Title != "" {
			return fmt.Errorf("duplicate title; title has already been defined as %q", w.Title)
		}
		w.Title = ow.Title
	}
	if ow.Intro != "" {
		if w.Intro != "" {
			return fmt.Errorf("duplicate intro; intro has already been defined")
		}
		w.Intro = ow.Intro
	}
	if ow.PocketSize != 0 {
		if w.PocketSize != 0 {
			return fmt.Errorf("duplicate pocket_size; pocket_size has already been defined as %d", w.PocketSize)
		}
		w.PocketSize = ow.PocketSize
	}

	w.Inventory = append(w.Inventory, ow.Inventory...)
	tld.Rooms = append(tld.Rooms, other.Rooms...)
	return nil
}

// unmarshalWorldData unmarshals world data from the given bytes. It does not
// parse or check world data.
func unmarshalWorldData(tomlData []byte) (topLevelWorldData, error) {
	var qwData topLevelWorldData
	if err := toml.Unmarshal(tomlData, &qwData); err != nil {
		return qwData, err
	}

	if !strings.EqualFold(qwData.Format, FormatName) {
		return qwData, fmt.Errorf("in header: 'format' key must exist and be set to '%s'", FormatName)
	}
	if strings.ToUpper(qwData.Type) != "DATA" {
		return qwData, fmt.Errorf("in header: 'type' must exist and be set to 'DATA'")
	}

	return qwData, nil
}

// unmarshalManifest unmarshals a QW manifest from the given bytes. It does not
// parse or check world data.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var qwData topLevelManifest
	if err := toml.Unmarshal(tomlData, &qwData); err != nil {
		return qwData, err
	}

	if !strings.EqualFold(qwData.Format, FormatName) {
		return qwData, fmt.Errorf("in header: 'format' key must exist and be set to '%s'", FormatName)
	}
	if strings.ToUpper(qwData.Type) != "MANIFEST" {
		return qwData, fmt.Errorf("in header: 'type' must exist and be set to 'MANIFEST'")
	}

	return qwData, nil
}
