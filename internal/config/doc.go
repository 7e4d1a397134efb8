// Package config provides the configuration system for gridcfg.
//
// The package manages a registry of typed options, loads their values
// from flat config files and environment variables, watches files for
// live reload, and notifies observers of changes.
//
// # Options
//
// Two option shapes exist:
//
//   - Scalar options hold one typed value and are named with a dotted
//     path ("editor.tabSize"); the part before the first dot selects
//     the file section, the rest selects the key.
//   - Compound options hold an ordered list of named tuples assembled
//     from several flat entries sharing a row identifier. A compound
//     option consumes the entire file section named after it.
//
// A compound section looks like this:
//
//	[bindings]
//	key_open = "<ctrl>o"
//	cmd_open = "open-file"
//	key_quit = "<ctrl>q"
//	cmd_quit = "quit"
//
// With a schema of two columns prefixed key_ and cmd_, this section
// produces two rows identified "open" and "quit". Row updates are
// all-or-nothing: a single invalid cell rejects the whole grid.
//
// # Sub-packages
//
//   - value: option value kinds and their text codecs
//   - option: scalar and compound option types
//   - registry: named option registry
//   - loader: TOML, YAML and environment loading plus grid discovery
//   - watcher: file watching for live reload
//   - notify: change notification and observer pattern
//
// # Basic Usage
//
//	cfg := config.New(config.WithConfigPath("config.toml"))
//	cfg.MustRegister(option.NewScalar("editor.tabSize", 4))
//	cfg.MustRegister(option.MustNewCompound("bindings", []*option.Entry{
//	    option.NewEntry(value.KindKeybind, "key_", "binding"),
//	    option.NewEntry(value.KindString, "cmd_", "command"),
//	}))
//
//	if err := cfg.Load(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	tabSize, _ := config.Value[int](cfg, "editor.tabSize")
//	rows := option.CompoundValue2[value.Keybind, string](cfg.Compound("bindings"))
package config
