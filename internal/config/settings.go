package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/overlay"
)

// Validation limits.
const (
	MinPrecision = 0
	MaxPrecision = conversion.MaxPrecision

	MinFractionDenominator = 1
	MaxFractionDenominator = 1024
)

// Settings are the user settings. The tags use the host's persisted key
// names, so a data.json written by the host loads unchanged.
type Settings struct {
	UseDescriptiveNames   bool   `toml:"useDescriptiveNames" yaml:"useDescriptiveNames" json:"useDescriptiveNames"`
	IsAutosuggestEnabled  bool   `toml:"isAutosuggestEnabled" yaml:"isAutosuggestEnabled" json:"isAutosuggestEnabled"`
	LivePreviewInEditMode bool   `toml:"livePreviewInEditMode" yaml:"livePreviewInEditMode" json:"livePreviewInEditMode"`
	ShowOriginalUnits     bool   `toml:"showOriginalUnits" yaml:"showOriginalUnits" json:"showOriginalUnits"`
	Precision             int    `toml:"precision" yaml:"precision" json:"precision"`
	FractionDenominator   int    `toml:"fractionDenominator" yaml:"fractionDenominator" json:"fractionDenominator"`
	UnitsScript           string `toml:"unitsScript" yaml:"unitsScript" json:"unitsScript"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		UseDescriptiveNames:   false,
		IsAutosuggestEnabled:  true,
		LivePreviewInEditMode: true,
		ShowOriginalUnits:     false,
		Precision:             conversion.DefaultPrecision,
		FractionDenominator:   32,
	}
}

// DisplayOptions derives the formatter options.
func (s Settings) DisplayOptions() conversion.DisplayOptions {
	return conversion.DisplayOptions{
		UseDescriptiveNames: s.UseDescriptiveNames,
		ShowOriginalUnits:   s.ShowOriginalUnits,
		Precision:           s.Precision,
		FractionDenominator: s.FractionDenominator,
	}
}

// OverlaySettings derives the live overlay settings.
func (s Settings) OverlaySettings() overlay.Settings {
	return overlay.Settings{
		LivePreview: s.LivePreviewInEditMode,
		Display:     s.DisplayOptions(),
	}
}

// Validate checks numeric ranges.
func (s Settings) Validate() error {
	if s.Precision < MinPrecision || s.Precision > MaxPrecision {
		return &ValidationError{Key: KeyPrecision, Value: s.Precision, Min: MinPrecision, Max: MaxPrecision}
	}
	if s.FractionDenominator < MinFractionDenominator || s.FractionDenominator > MaxFractionDenominator {
		return &ValidationError{
			Key:   KeyFractionDenominator,
			Value: s.FractionDenominator,
			Min:   MinFractionDenominator,
			Max:   MaxFractionDenominator,
		}
	}
	return nil
}

// Setting keys.
const (
	KeyUseDescriptiveNames   = "useDescriptiveNames"
	KeyIsAutosuggestEnabled  = "isAutosuggestEnabled"
	KeyLivePreviewInEditMode = "livePreviewInEditMode"
	KeyShowOriginalUnits     = "showOriginalUnits"
	KeyPrecision             = "precision"
	KeyFractionDenominator   = "fractionDenominator"
	KeyUnitsScript           = "unitsScript"
)

type kind uint8

const (
	kindBool kind = iota
	kindInt
	kindString
)

// field binds a setting key to its struct field.
type field struct {
	key  string
	kind kind
	b    func(*Settings) *bool
	i    func(*Settings) *int
	s    func(*Settings) *string
}

var fields = []field{
	{key: KeyUseDescriptiveNames, kind: kindBool, b: func(s *Settings) *bool { return &s.UseDescriptiveNames }},
	{key: KeyIsAutosuggestEnabled, kind: kindBool, b: func(s *Settings) *bool { return &s.IsAutosuggestEnabled }},
	{key: KeyLivePreviewInEditMode, kind: kindBool, b: func(s *Settings) *bool { return &s.LivePreviewInEditMode }},
	{key: KeyShowOriginalUnits, kind: kindBool, b: func(s *Settings) *bool { return &s.ShowOriginalUnits }},
	{key: KeyPrecision, kind: kindInt, i: func(s *Settings) *int { return &s.Precision }},
	{key: KeyFractionDenominator, kind: kindInt, i: func(s *Settings) *int { return &s.FractionDenominator }},
	{key: KeyUnitsScript, kind: kindString, s: func(s *Settings) *string { return &s.UnitsScript }},
}

func lookupField(key string) (field, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.key, key) {
			return f, true
		}
	}
	return field{}, false
}

// Keys returns every setting key in display order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns a setting as text.
func (s Settings) Get(key string) (string, error) {
	f, ok := lookupField(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	switch f.kind {
	case kindBool:
		return strconv.FormatBool(*f.b(&s)), nil
	case kindInt:
		return strconv.Itoa(*f.i(&s)), nil
	default:
		return *f.s(&s), nil
	}
}

// With returns a copy of s with key set from its textual value. The result
// is not validated.
func (s Settings) With(key, value string) (Settings, error) {
	f, ok := lookupField(key)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	switch f.kind {
	case kindBool:
		v, ok := parseBool(value)
		if !ok {
			return s, &TypeError{Key: f.key, Want: "bool", Got: strconv.Quote(value)}
		}
		*f.b(&s) = v
	case kindInt:
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return s, &TypeError{Key: f.key, Want: "int", Got: strconv.Quote(value)}
		}
		*f.i(&s) = v
	default:
		*f.s(&s) = value
	}
	return s, nil
}

// parseBool accepts the spellings the environment loader accepts.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}
