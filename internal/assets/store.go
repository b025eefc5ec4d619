// Package assets loads terminal sprites in the background. The game asks
// for a sprite by key every frame and draws a placeholder until it is ready.
package assets

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

//go:embed sprites.yaml
var defaultSprites []byte

// Sprite is a small block of coloured runes.
type Sprite struct {
	Rows  []string
	Color core.Color
}

// Width returns the widest row in runes.
func (s Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		w = max(w, len([]rune(row)))
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int {
	return len(s.Rows)
}

// Store hands out sprites by key.
type Store interface {
	// Get returns the sprite and true once it is loaded.
	Get(key string) (Sprite, bool)
	// Done reports whether loading has finished, successfully or not.
	Done() bool
}

type spriteFile struct {
	Sprites map[string]struct {
		Color string   `yaml:"color"`
		Rows  []string `yaml:"rows"`
	} `yaml:"sprites"`
}

// Parse decodes a sprite sheet.
func Parse(data []byte) (map[string]Sprite, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: failed to parse sprites: %w", err)
	}
	sprites := make(map[string]Sprite, len(f.Sprites))
	for key, s := range f.Sprites {
		if len(s.Rows) == 0 || s.Rows[0] == "" {
			return nil, fmt.Errorf("assets: sprite %q has no rows", key)
		}
		color, ok := core.ParseColor(s.Color)
		if !ok && s.Color != "" {
			return nil, fmt.Errorf("assets: sprite %q: unknown color %q", key, s.Color)
		}
		sprites[key] = Sprite{Rows: s.Rows, Color: color}
	}
	return sprites, nil
}

// DefaultSprites returns the embedded sprite sheet.
func DefaultSprites() []byte {
	return defaultSprites
}

// Loader is a Store filled by a background goroutine.
type Loader struct {
	mu      sync.RWMutex
	sprites map[string]Sprite
	done    atomic.Bool
	err     error
	log     *log.Logger
}

var _ Store = (*Loader)(nil)

// NewLoader creates an empty loader. Call Load to start loading.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{sprites: map[string]Sprite{}, log: logger}
}

// Load reads the sprite sheet at path in the background, or the embedded
// sheet when path is empty. A failure leaves the store empty and done, so
// every Get falls back to placeholders.
func (l *Loader) Load(ctx context.Context, path string) {
	go func() {
		defer l.done.Store(true)

		data := defaultSprites
		if path != "" {
			var err error
			data, err = os.ReadFile(path)
			if err != nil {
				l.fail(fmt.Errorf("assets: failed to read %s: %w", path, err))
				return
			}
		}
		if ctx.Err() != nil {
			l.fail(ctx.Err())
			return
		}

		sprites, err := Parse(data)
		if err != nil {
			l.fail(err)
			return
		}

		l.mu.Lock()
		l.sprites = sprites
		l.mu.Unlock()
		l.log.Debug("sprites loaded", "count", len(sprites), "path", path)
	}()
}

func (l *Loader) fail(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
	l.log.Warn("sprites unavailable, drawing placeholders", "err", err)
}

// Get returns a loaded sprite.
func (l *Loader) Get(key string) (Sprite, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sprites[key]
	return s, ok
}

// Done reports whether loading finished.
func (l *Loader) Done() bool {
	return l.done.Load()
}

// Err returns the load failure, if any.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Static is a Store over a fixed map, ready immediately.
type Static map[string]Sprite

func (s Static) Get(key string) (Sprite, bool) {
	sp, ok := s[key]
	return sp, ok
}

func (s Static) Done() bool { return true }
