package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/unitlens/internal/config"
	"github.com/dshills/unitlens/internal/units"
)

// execute runs the root command against a settings file in a temp dir.
func execute(t *testing.T, cfg, stdin string, args ...string) (string, error) {
	t.Helper()
	if cfg == "" {
		cfg = filepath.Join(t.TempDir(), "data.json")
	}

	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfg}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"render", "convert", "units", "insert", "preview", "settings"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "", "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "", "", "--log-level", "loud", "units")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRenderStdin(t *testing.T) {
	out, err := execute(t, "", "Buy [2ft|in] of pipe.\nCut [30in|ftf].", "render")
	require.NoError(t, err)
	assert.Equal(t, "Buy 24.00 in of pipe.\nCut 2 6 ft-in.", out)
}

func TestRenderFileWithStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("[1in|mm] and [1xx|mm]"), 0o644))

	out, err := execute(t, "", "", "render", "--stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "25.40 mm and [1xx|mm]")
	assert.Contains(t, out, "1 converted, 1 left unchanged")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := execute(t, "", "", "render", filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderHTML(t *testing.T) {
	in := `<p>Length [2ft|in]</p><code>[1in|mm]</code>`
	out, err := execute(t, "", in, "render", "--html")
	require.NoError(t, err)
	assert.Equal(t, `<p>Length 24.00 in</p><code>[1in|mm]</code>`, out)

	out, err = execute(t, "", `<p>[2ft|in]</p><em>[1in|mm]</em>`, "render", "--html", "--skip", "em")
	require.NoError(t, err)
	assert.Equal(t, `<p>24.00 in</p><em>[1in|mm]</em>`, out)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2", "ft", "in"}, "24.00 in\n"},
		{[]string{"1-1/2", "in", "mm"}, "38.10 mm\n"},
		{[]string{"30", "in", "ftf"}, "2 6 ft-in\n"},
		{[]string{"--original", "2", "ft", "in"}, "2 ft (24.00 in)\n"},
		{[]string{"--precision", "1", "2", "ft", "in"}, "24.0 in\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, "", "", append([]string{"convert"}, tt.args...)...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestConvertErrors(t *testing.T) {
	_, err := execute(t, "", "", "convert", "2", "xx", "in")
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)

	_, err = execute(t, "", "", "convert", "2", "ft", "kg")
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)

	_, err = execute(t, "", "", "convert", "two", "ft", "in")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid conversion request")

	_, err = execute(t, "", "", "convert", "2", "ft")
	assert.Error(t, err)
}

func TestConvertUsesEnvironment(t *testing.T) {
	t.Setenv("UNITLENS_SHOW_ORIGINAL_UNITS", "true")
	out, err := execute(t, "", "", "convert", "2", "ft", "in")
	require.NoError(t, err)
	assert.Equal(t, "2 ft (24.00 in)\n", out)
}

func TestUnits(t *testing.T) {
	out, err := execute(t, "", "", "units")
	require.NoError(t, err)
	assert.Contains(t, out, "[length]")
	assert.Contains(t, out, "[temperature]")
	assert.NotContains(t, out, "ftf", "pseudo-units are not part of the vocabulary")

	out, err = execute(t, "", "", "units", "ft")
	require.NoError(t, err)
	assert.Contains(t, out, "  inf        Fractional Inches\n")
	assert.Contains(t, out, "  ftf        Feet and Inches\n")
	assert.NotContains(t, out, "kg")

	_, err = execute(t, "", "", "units", "xx")
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
}

func TestInsert(t *testing.T) {
	out, err := execute(t, "", "", "insert", "1-1/2", "in", "mm")
	require.NoError(t, err)
	assert.Equal(t, "[1.5in|mm]\n", out)

	out, err = execute(t, "", "", "insert", "30", "in", "ftf")
	require.NoError(t, err)
	assert.Equal(t, "[30in|ftf]\n", out)

	_, err = execute(t, "", "", "insert", "2", "ft", "kg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not convert")

	_, err = execute(t, "", "", "insert", "2", "xx", "in")
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
}

func TestSettingsSetAndShow(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nested", "data.json")

	out, err := execute(t, cfg, "", "settings", "set", "precision", "3")
	require.NoError(t, err)
	assert.Equal(t, "precision = 3\n", out)

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gjson.GetBytes(data, "precision").Int())

	out, err = execute(t, cfg, "", "convert", "2", "ft", "in")
	require.NoError(t, err)
	assert.Equal(t, "24.000 in\n", out)

	out, err = execute(t, cfg, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "File: "+cfg)
	assert.Contains(t, out, "precision")
	assert.Contains(t, out, "showOriginalUnits")
}

func TestSettingsSetErrors(t *testing.T) {
	_, err := execute(t, "", "", "settings", "set", "precision", "99")
	assert.ErrorIs(t, err, config.ErrValidationFailed)

	_, err = execute(t, "", "", "settings", "set", "colour", "red")
	assert.ErrorIs(t, err, config.ErrSettingNotFound)

	_, err = execute(t, "", "", "settings", "set", "showOriginalUnits", "perhaps")
	assert.ErrorIs(t, err, config.ErrTypeMismatch)
}

func TestMalformedSettingsFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("precision = = 2"), 0o644))

	_, err := execute(t, cfg, "", "units")
	var pe *config.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestUnitsScriptFlag(t *testing.T) {
	script := filepath.Join(t.TempDir(), "units.lua")
	require.NoError(t, os.WriteFile(script, []byte(`unit{ id = "furlong", measure = "length", factor = 201.168, plural = "furlongs" }`), 0o644))

	out, err := execute(t, "", "", "--units-script", script, "convert", "1", "furlong", "m")
	require.NoError(t, err)
	assert.Equal(t, "201.17 m\n", out)

	out, err = execute(t, "", "", "--units-script", script, "units", "furlong")
	require.NoError(t, err)
	assert.Contains(t, out, "furlongs")
}

func TestUnitsScriptFromSettings(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "units.lua")
	require.NoError(t, os.WriteFile(script, []byte(`unit{ id = "smoot", measure = "length", factor = 1.7018 }`), 0o644))
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("unitsScript: "+script+"\n"), 0o644))

	out, err := execute(t, cfg, "", "convert", "1", "smoot", "m")
	require.NoError(t, err)
	assert.Equal(t, "1.70 m\n", out)
}

func TestPreviewRequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	_, err := execute(t, "", "", "preview", "note.md")
	assert.ErrorIs(t, err, errNotTerminal)
}
