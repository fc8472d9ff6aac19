// Package assets loads the sprites and sounds used by the renderer and the
// audio player. A Bundle is built once at startup and never modified.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

// SheetFile is the sprite sheet name looked up in an assets directory.
const SheetFile = "sprites.yaml"

// Bundle holds every sprite and sound for one run.
type Bundle struct {
	sprites map[string]Sprite
	sounds  map[string]*beep.Buffer
}

// NewBundle builds a bundle from already loaded assets.
// All required sprites must be present; sounds are optional.
func NewBundle(sprites map[string]Sprite, sounds map[string]*beep.Buffer) (*Bundle, error) {
	if err := checkRequired(sprites); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if sounds == nil {
		sounds = map[string]*beep.Buffer{}
	}
	return &Bundle{sprites: sprites, sounds: sounds}, nil
}

// Default returns the embedded sprites with synthesized sounds.
func Default() (*Bundle, error) {
	return Load("", nil)
}

// Load builds a bundle from dir. With an empty dir the embedded sprite sheet
// and synthesized tones are used. Otherwise dir/sprites.yaml replaces the
// embedded sheet when present, and each sound is decoded from its WAV file.
// A sound that cannot be loaded is logged and left silent.
func Load(dir string, logger *log.Logger) (*Bundle, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sheet, source, err := readSheet(dir)
	if err != nil {
		return nil, err
	}
	sprites, err := ParseSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", source, err)
	}

	var sounds map[string]*beep.Buffer
	if dir == "" {
		sounds, err = synthesizeAll()
		if err != nil {
			return nil, err
		}
	} else {
		sounds = loadSounds(dir, logger)
	}

	logger.Debug("assets loaded", "sprites", source, "sounds", len(sounds))
	return NewBundle(sprites, sounds)
}

func readSheet(dir string) ([]byte, string, error) {
	if dir == "" {
		return defaultSheet, "embedded", nil
	}

	path := filepath.Join(dir, SheetFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultSheet, "embedded", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("assets: read %s: %w", path, err)
	}
	return data, path, nil
}

func loadSounds(dir string, logger *log.Logger) map[string]*beep.Buffer {
	sounds := make(map[string]*beep.Buffer, len(soundFiles))
	for name, file := range soundFiles {
		buf, err := DecodeWAV(filepath.Join(dir, file))
		if err != nil {
			logger.Warn("sound unavailable", "sound", name, "error", err)
			continue
		}
		sounds[name] = buf
	}
	return sounds
}

// Sprite returns the named sprite, or an empty sprite if it is unknown.
func (b *Bundle) Sprite(name string) Sprite {
	return b.sprites[name]
}

// Sound returns the buffer for the named sound.
func (b *Bundle) Sound(name string) (*beep.Buffer, bool) {
	buf, ok := b.sounds[name]
	return buf, ok
}
