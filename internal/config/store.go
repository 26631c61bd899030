package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"
)

// ErrNoPath is returned by Save when the store has no backing file.
var ErrNoPath = errors.New("settings store has no file")

// Change sources.
const (
	SourceFile = "file"
	SourceUser = "user"
)

// Change describes a settings transition.
type Change struct {
	Old    Settings
	New    Settings
	Source string
}

// Changed reports whether key differs between Old and New.
func (c Change) Changed(key string) bool {
	a, errA := c.Old.Get(key)
	b, errB := c.New.Get(key)
	return errA == nil && errB == nil && a != b
}

// Observer is called after the settings change.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.store != nil {
		s.store.unsubscribe(s.id)
	}
}

// Store holds the current settings, persists them and notifies observers.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	path    string
	format  Format
	fs      FileSystem
	env     *EnvLoader
	logger  *zap.Logger
	current Settings

	observers map[uint64]Observer
	nextID    uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFileSystem sets the file system used to read and write the file.
func WithFileSystem(fsys FileSystem) StoreOption {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithEnv applies environment overrides on every load.
func WithEnv(env *EnvLoader) StoreOption {
	return func(s *Store) {
		s.env = env
	}
}

// NewStore creates a store backed by path, which may be empty for an
// in-memory store. The store starts with the default settings; call Load
// to read the file.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path:      path,
		fs:        OSFS{},
		logger:    zap.NewNop(),
		current:   DefaultSettings(),
		observers: make(map[uint64]Observer),
	}
	if path != "" {
		format, err := FormatFor(path)
		if err != nil {
			return nil, err
		}
		s.format = format
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load reads the file over the defaults and applies environment overrides.
// A missing file is not an error.
func (s *Store) Load() error {
	next := DefaultSettings()

	if s.path != "" {
		data, err := s.fs.ReadFile(s.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Debug("settings file not found, using defaults", zap.String("path", s.path))
		case err != nil:
			return fmt.Errorf("reading settings file %s: %w", s.path, err)
		default:
			next, err = Decode(s.format, s.path, data, next)
			if err != nil {
				return err
			}
		}
	}

	if s.env != nil {
		var err error
		next, err = s.env.Apply(next)
		if err != nil {
			return err
		}
	}

	return s.Set(next, SourceFile)
}

// Reload is Load under the name the watcher uses.
func (s *Store) Reload() error {
	return s.Load()
}

// Set validates and installs next. Observers run outside the lock, and
// only when the settings actually changed.
func (s *Store) Set(next Settings, source string) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.current
	if old == next {
		s.mu.Unlock()
		return nil
	}
	s.current = next
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	s.logger.Debug("settings changed", zap.String("source", source))
	change := Change{Old: old, New: next, Source: source}
	for _, o := range observers {
		o(change)
	}
	return nil
}

// Update sets one key from text.
func (s *Store) Update(key, value string) error {
	next, err := s.Settings().With(key, value)
	if err != nil {
		return err
	}
	return s.Set(next, SourceUser)
}

// Save writes the current settings to the file. JSON files keep any keys
// the store does not own.
func (s *Store) Save() error {
	if s.path == "" {
		return ErrNoPath
	}

	existing, err := s.fs.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading settings file %s: %w", s.path, err)
	}

	data, err := Encode(s.format, s.Settings(), existing)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", s.path, err)
	}
	s.logger.Debug("settings saved", zap.String("path", s.path), zap.Stringer("format", s.format))
	return nil
}

// Subscribe registers an observer for all changes.
func (s *Store) Subscribe(observer Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.observers[s.nextID] = observer
	return &Subscription{id: s.nextID, store: s}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}
