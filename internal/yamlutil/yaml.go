// Package yamlutil keeps the YAML library behind a small decode/encode API so
// config and defaults loading never import it directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded documents (1MB). Bookmarklet configs are tiny.
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("yamlutil: empty input")
	ErrNilTarget     = errors.New("yamlutil: nil decode target")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
)

func check(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	return nil
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := check(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
// Error messages include the offending source line.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// ReadFileStrict reads path (bounded by MaxInputSize) and strictly decodes it.
// Errors from opening the file are returned unwrapped so callers can test
// them with os.IsNotExist.
func ReadFileStrict(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- caller-provided config path
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading %s: %w", path, err)
	}
	return UnmarshalStrict(data, v)
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
