package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to path, creating it if needed.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path.
func (OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Decode overlays the values in data onto base. Keys absent from data keep
// their base value; unknown keys are ignored. source names the data in
// errors.
func Decode(format Format, source string, data []byte, base Settings) (Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}

	s := base
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return base, &ParseError{File: source, Reason: err.Error(), Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return base, &ParseError{File: source, Reason: err.Error(), Err: err}
		}
	case FormatJSON:
		return decodeJSON(source, data, base)
	default:
		return base, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return s, nil
}

// decodeJSON reads each known key with gjson so that the rest of the
// document, which may belong to another tool, is never interpreted.
func decodeJSON(source string, data []byte, base Settings) (Settings, error) {
	if !gjson.ValidBytes(data) {
		return base, &ParseError{File: source, Reason: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return base, &ParseError{File: source, Reason: "top level must be an object"}
	}

	s := base
	for _, f := range fields {
		r := doc.Get(f.key)
		if !r.Exists() || r.Type == gjson.Null {
			continue
		}
		switch f.kind {
		case kindBool:
			if r.Type != gjson.True && r.Type != gjson.False {
				return base, &TypeError{Key: f.key, Want: "bool", Got: r.Raw}
			}
			*f.b(&s) = r.Bool()
		case kindInt:
			if r.Type != gjson.Number || r.Num != float64(int64(r.Num)) {
				return base, &TypeError{Key: f.key, Want: "int", Got: r.Raw}
			}
			*f.i(&s) = int(r.Int())
		case kindString:
			if r.Type != gjson.String {
				return base, &TypeError{Key: f.key, Want: "string", Got: r.Raw}
			}
			*f.s(&s) = r.String()
		}
	}
	return s, nil
}

// Encode serializes s. For JSON, existing is the current file content: the
// settings keys are set in place and every other key is preserved.
func Encode(format Format, s Settings, existing []byte) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(s)
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON:
		return encodeJSON(s, existing)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

func encodeJSON(s Settings, existing []byte) ([]byte, error) {
	fresh := len(bytes.TrimSpace(existing)) == 0 ||
		!gjson.ValidBytes(existing) ||
		!gjson.ParseBytes(existing).IsObject()

	data := existing
	if fresh {
		data = []byte("{}")
	}

	var err error
	for _, f := range fields {
		var v any
		switch f.kind {
		case kindBool:
			v = *f.b(&s)
		case kindInt:
			v = *f.i(&s)
		default:
			v = *f.s(&s)
		}
		data, err = sjson.SetBytes(data, f.key, v)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", f.key, err)
		}
	}

	if fresh {
		data = []byte(gjson.GetBytes(data, "@pretty").Raw)
	}
	return data, nil
}
