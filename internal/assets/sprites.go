package assets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

//go:embed sheets/sprites.yaml
var defaultSheet []byte

// Sprite names the renderer requires.
const (
	SpriteAvatar   = "avatar"
	SpritePipeBody = "pipe_body"
	SpritePipeCap  = "pipe_cap"
	SpriteGround   = "ground"
	SpriteWelcome  = "welcome"
	SpriteGameOver = "game_over"
)

// RequiredSprites lists every sprite a Bundle must carry.
var RequiredSprites = []string{
	SpriteAvatar,
	SpritePipeBody,
	SpritePipeCap,
	SpriteGround,
	SpriteWelcome,
	SpriteGameOver,
}

// Sprite is a block of terminal glyphs drawn in a single color.
type Sprite struct {
	Lines []string
	Color core.Color
}

// Fill returns the first rune of the sprite, used for tiled areas.
func (s Sprite) Fill() rune {
	for _, line := range s.Lines {
		if r, _ := utf8.DecodeRuneInString(line); r != utf8.RuneError {
			return r
		}
	}
	return ' '
}

// Width returns the widest line in runes.
func (s Sprite) Width() int {
	w := 0
	for _, line := range s.Lines {
		w = max(w, utf8.RuneCountInString(line))
	}
	return w
}

// Height returns the number of lines.
func (s Sprite) Height() int {
	return len(s.Lines)
}

type spriteSpec struct {
	Color string   `yaml:"color"`
	Lines []string `yaml:"lines"`
}

// ParseSheet decodes a YAML sprite sheet and checks that every required
// sprite is present.
func ParseSheet(data []byte) (map[string]Sprite, error) {
	var specs map[string]spriteSpec

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&specs); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	sprites := make(map[string]Sprite, len(specs))
	for name, spec := range specs {
		sprites[name] = Sprite{
			Lines: spec.Lines,
			Color: core.ParseColor(spec.Color),
		}
	}

	if err := checkRequired(sprites); err != nil {
		return nil, err
	}
	return sprites, nil
}

func checkRequired(sprites map[string]Sprite) error {
	var errs []error
	for _, name := range RequiredSprites {
		if s, ok := sprites[name]; !ok || s.Height() == 0 {
			errs = append(errs, fmt.Errorf("sprite %q is missing", name))
		}
	}
	return errors.Join(errs...)
}
