// Package config provides the settings system for unitlens.
//
// Settings are a flat set of keys persisted in a JSON, TOML or YAML file.
// The key names match the ones the host application stores, so an existing
// data.json can be pointed at directly.
//
// # Layers
//
// Values are resolved lowest to highest:
//
//	┌─────────────────────────────┐
//	│  3. Environment (UNITLENS_) │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Settings file           │
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	store, err := config.NewStore(path, config.WithEnv(config.NewEnvLoader(config.DefaultEnvPrefix)))
//	if err != nil {
//	    return err
//	}
//	if err := store.Load(); err != nil {
//	    return err
//	}
//	sub := store.Subscribe(func(c config.Change) {
//	    overlay.SettingsChanged(c.New.OverlaySettings())
//	})
//	defer sub.Unsubscribe()
//
// # Live Reload
//
// A Watcher reloads the store when the file is written. Observers receive
// the change; a malformed file leaves the previous settings in effect.
//
// # JSON Files
//
// JSON is read and written key by key with gjson and sjson, so keys the
// store does not own survive a Save unchanged.
package config
