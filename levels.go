package logbase

import (
	"sort"
	"strings"
)

// LevelSet maps a level name to its enabled flag. A level that is absent
// from the set is disabled.
type LevelSet map[string]bool

// LevelSpec is a level configuration accepted by ConfigureLevels.
// It is implemented by LevelString and LevelSet; a nil LevelSpec means
// "leave the current configuration alone".
type LevelSpec interface {
	levelSet() LevelSet
}

// LevelString is a comma separated list of enabled levels, e.g. "error,warn,fatal".
type LevelString string

func (s LevelString) levelSet() LevelSet {
	return ParseLevels(string(s))
}

func (s LevelSet) levelSet() LevelSet {
	return s.Clone()
}

// DefaultLevels returns the levels enabled on a processor that was never configured.
func DefaultLevels() LevelSet {
	return LevelSet{
		LevelFatal: true,
		LevelError: true,
		LevelWarn:  true,
		LevelInfo:  true,
	}
}

// ParseLevels builds a LevelSet from a comma separated list of level names.
// Tokens are trimmed; empty tokens are skipped. Case is kept as written.
func ParseLevels(s string) LevelSet {
	set := LevelSet{}
	for _, token := range strings.Split(s, levelSeparator) {
		token = strings.TrimSpace(token)
		if token == emptyString {
			continue
		}
		set[token] = true
	}
	return set
}

// Enabled reports whether level is present and true.
func (s LevelSet) Enabled(level string) bool {
	return s[level]
}

// Clone returns a copy of the set. A nil set clones to an empty one.
func (s LevelSet) Clone() LevelSet {
	out := make(LevelSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String renders the enabled levels in the same comma separated form
// ParseLevels accepts, sorted by name.
func (s LevelSet) String() string {
	names := make([]string, 0, len(s))
	for name, on := range s {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, levelSeparator)
}

// levelSpecFrom resolves loosely typed configuration input, as produced by
// JSON/YAML decoders, into a LevelSpec. ok is false for shapes it cannot read.
func levelSpecFrom(v any) (spec LevelSpec, ok bool) {
	switch in := v.(type) {
	case nil:
		return nil, true
	case LevelSpec:
		return in, true
	case string:
		return LevelString(in), true
	case map[string]bool:
		return LevelSet(in), true
	case []string:
		return LevelString(strings.Join(in, levelSeparator)), true
	case map[string]any:
		set := make(LevelSet, len(in))
		for name, flag := range in {
			on, isBool := flag.(bool)
			if !isBool {
				return nil, false
			}
			set[name] = on
		}
		return set, true
	case []any:
		names := make([]string, 0, len(in))
		for _, item := range in {
			name, isString := item.(string)
			if !isString {
				return nil, false
			}
			names = append(names, name)
		}
		return LevelString(strings.Join(names, levelSeparator)), true
	default:
		return nil, false
	}
}
