package loader

import (
	"os"
	"strings"
)

// EnvLoader loads scalar overrides from environment variables.
//
// Compound options cannot be carried by environment variables; the env
// layer only ever overrides individual flat entries. An explicit mapping
// names the variables to read; unmapped variables with the configured
// prefix are converted by convention: GRIDCFG_EDITOR_TAB_SIZE becomes
// key tabSize in section editor.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "GRIDCFG_")
	mapping map[string]string // Env var -> "section.key"
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
	}
}

// NewEnvLoaderWithMapping creates a loader with explicit variable
// mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	l := NewEnvLoader(prefix)
	for env, target := range mapping {
		l.mapping[env] = target
	}
	return l
}

// AddMapping adds a custom environment variable mapping. The target is
// "section.key".
func (l *EnvLoader) AddMapping(envVar, target string) {
	l.mapping[envVar] = target
}

// Load reads environment variables and returns flat sections.
// Empty string values are valid values, not unset.
func (l *EnvLoader) Load() (File, error) {
	file := make(File)

	set := func(target, value string) {
		section, key, ok := splitTarget(target)
		if !ok {
			return
		}
		if file[section] == nil {
			file[section] = make(Section)
		}
		file[section][key] = value
	}

	// Explicitly mapped variables first.
	for env, target := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			set(target, val)
		}
	}

	// Then prefixed variables not in the mapping.
	if l.prefix != "" {
		for _, env := range os.Environ() {
			if !strings.HasPrefix(env, l.prefix) {
				continue
			}
			name, value, ok := strings.Cut(env, "=")
			if !ok {
				continue
			}
			if _, mapped := l.mapping[name]; mapped {
				continue
			}
			set(l.envToTarget(name), value)
		}
	}

	return file, nil
}

// envToTarget converts GRIDCFG_EDITOR_TAB_SIZE to "editor.tabSize".
func (l *EnvLoader) envToTarget(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return strings.ToLower(name)
	}

	section := strings.ToLower(parts[0])

	key := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			key += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}

	return section + "." + key
}

// splitTarget splits "section.key" into its parts.
func splitTarget(target string) (section, key string, ok bool) {
	section, key, ok = strings.Cut(target, ".")
	if !ok || section == "" || key == "" {
		return "", "", false
	}
	return section, key, true
}
