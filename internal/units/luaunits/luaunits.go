// Package luaunits extends a unit table from Lua scripts.
//
// A script registers units with the unit function:
//
//	unit{ id = "furlong", measure = "length", factor = 201.168,
//	      singular = "furlong", plural = "furlongs", system = "imperial" }
//
//	-- factors may be derived from existing units
//	unit{ id = "chain", measure = "length", factor = factor_of("ft") * 66 }
//
// factor scales a value to the base unit of its measure and offset is added
// afterwards. A new measure may be introduced by registering its base unit
// with factor 1. Scripts run in a sandbox without io, os or module loading.
package luaunits

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/units"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 2 * time.Second

// ScriptError reports a failed script.
type ScriptError struct {
	// Name identifies the script, usually its path.
	Name string
	// Err is the registration error or the Lua error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("units script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Loader runs unit scripts against a table.
type Loader struct {
	table   *units.Table
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader creates a loader registering into table.
func NewLoader(table *units.Table, opts ...Option) *Loader {
	l := &Loader{
		table:   table,
		logger:  zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile runs the script at path.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]units.ID, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading units script: %w", err)
	}
	return l.LoadString(ctx, path, string(src))
}

// LoadString runs src and returns the ids it registered, in order. Units
// registered before a failure stay registered.
func (l *Loader) LoadString(ctx context.Context, name, src string) ([]units.ID, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	L := newSandbox()
	defer L.Close()
	L.SetContext(ctx)

	r := &run{table: l.table}
	L.SetGlobal("unit", L.NewFunction(r.unit))
	L.SetGlobal("factor_of", L.NewFunction(r.factorOf))

	if err := L.DoString(src); err != nil {
		switch {
		case r.err != nil && strings.Contains(err.Error(), r.err.Error()):
			err = r.err
		case ctx.Err() != nil:
			err = ctx.Err()
		}
		return r.ids, &ScriptError{Name: name, Err: err}
	}

	l.logger.Debug("units script loaded", zap.String("script", name), zap.Int("units", len(r.ids)))
	return r.ids, nil
}

// newSandbox opens only the base, table, string and math libraries and
// removes the loaders from the base library.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// run is the state of one script execution. err is the Go error behind the
// last Lua error raised by unit or factor_of; it only replaces the script's
// error when the script fails with that same message.
type run struct {
	table *units.Table
	ids   []units.ID
	err   error
}

// raise records err and raises it as a Lua error.
func (r *run) raise(L *lua.LState, err error) {
	r.err = err
	L.RaiseError("%s", err.Error())
}

func (r *run) unit(L *lua.LState) int {
	tbl := L.CheckTable(1)

	u := units.Unit{
		ID:       stringField(L, tbl, "id"),
		Measure:  units.Measure(stringField(L, tbl, "measure")),
		System:   units.System(stringField(L, tbl, "system")),
		Singular: stringField(L, tbl, "singular"),
		Plural:   stringField(L, tbl, "plural"),
		Factor:   numberField(L, tbl, "factor", 1),
		Offset:   numberField(L, tbl, "offset", 0),
	}

	if err := r.table.Register(u); err != nil {
		r.raise(L, err)
		return 0
	}
	r.ids = append(r.ids, u.ID)
	return 0
}

func (r *run) factorOf(L *lua.LState) int {
	id := L.CheckString(1)
	u, ok := r.table.Lookup(id)
	if !ok {
		r.raise(L, &units.UnsupportedUnitError{Unit: id, Reason: "unknown unit"})
		return 0
	}
	L.Push(lua.LNumber(u.Factor))
	return 1
}

func stringField(L *lua.LState, tbl *lua.LTable, key string) string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return string(v)
	case *lua.LNilType:
		return ""
	default:
		L.ArgError(1, fmt.Sprintf("field %q must be a string, got %s", key, v.Type()))
		return ""
	}
}

func numberField(L *lua.LState, tbl *lua.LTable, key string, def float64) float64 {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LNumber:
		return float64(v)
	case *lua.LNilType:
		return def
	default:
		L.ArgError(1, fmt.Sprintf("field %q must be a number, got %s", key, v.Type()))
		return 0
	}
}
