package bookmarklet

import (
	"errors"
	"fmt"

	"github.com/alnah/go-bookmarklet/internal/pipeline"
)

// Minifier engine names accepted by NewMinifier.
const (
	MinifierEsbuild  = pipeline.EngineEsbuild
	MinifierTdewolff = pipeline.EngineTdewolff
	MinifierNone     = pipeline.EngineNone
)

// Minifier shrinks the rendered script to a single line.
type Minifier interface {
	Minify(src string) (string, error)
}

// MinifierEngines lists the supported engine names, default first.
func MinifierEngines() []string {
	return pipeline.Engines()
}

// NewMinifier returns the minifier for engine ("" selects esbuild).
// The "none" engine keeps line breaks and is meant for debugging templates.
func NewMinifier(engine string) (Minifier, error) {
	m, err := pipeline.NewMinifier(engine)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownEngine) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMinifier, engine)
		}
		return nil, err
	}
	return m, nil
}
