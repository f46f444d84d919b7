package lib

import "fmt"
import "strings"

// Config is a flat bag of configuration parameters, keyed by dotted
// names (e.g. "heap.superblocksize"). Typed accessors panic when a
// required key is missing or holds the wrong type; Default* variants
// return a fallback when the key is missing, and panic like the typed
// accessors when the key is present with the wrong type.
type Config map[string]interface{}

// Section creates a new config object with parameters starting with
// `prefix`.
func (config Config) Section(prefix string) Config {
	section := make(Config)
	for key, value := range config {
		if strings.HasPrefix(key, prefix) {
			section[key] = value
		}
	}
	return section
}

// Trim removes `prefix` from every key in config.
func (config Config) Trim(prefix string) Config {
	trimmed := make(Config)
	for key, value := range config {
		trimmed[strings.TrimPrefix(key, prefix)] = value
	}
	return trimmed
}

func (c Config) Bool(key string) bool {
	value, ok := c[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	val, ok := value.(bool)
	if !ok {
		panicerr("config %q not a bool: %T", key, value)
	}
	return val
}

func (c Config) DefaultBool(key string, d bool) bool {
	if _, ok := c[key]; !ok {
		return d
	}
	return c.Bool(key)
}

func (c Config) Int64(key string) int64 {
	value, ok := c[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	switch val := value.(type) {
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	case uint:
		return int64(val)
	case uint64:
		return int64(val)
	case uint32:
		return int64(val)
	case uint16:
		return int64(val)
	case uint8:
		return int64(val)
	case int:
		return int64(val)
	case int64:
		return val
	case int32:
		return int64(val)
	case int16:
		return int64(val)
	case int8:
		return int64(val)
	}
	panicerr("config %q not a number: %T", key, value)
	return 0
}

func (c Config) DefaultInt64(key string, d int64) int64 {
	if _, ok := c[key]; !ok {
		return d
	}
	return c.Int64(key)
}

func (c Config) String(key string) string {
	value, ok := c[key]
	if !ok {
		panicerr("missing config %q", key)
	}
	val, ok := value.(string)
	if !ok {
		panicerr("config %q not a string: %T", key, value)
	}
	return val
}

func (c Config) DefaultString(key, d string) string {
	if _, ok := c[key]; !ok {
		return d
	}
	return c.String(key)
}

// Mixinconfig merges a list of Config/map[string]interface{} values into
// a single Config, later entries taking precedence.
func Mixinconfig(configs ...interface{}) Config {
	update := func(dst Config, config map[string]interface{}) Config {
		for key, value := range config {
			dst[key] = value
		}
		return dst
	}
	dst := make(Config)
	for _, config := range configs {
		switch cnf := config.(type) {
		case Config:
			dst = update(dst, map[string]interface{}(cnf))
		case map[string]interface{}:
			dst = update(dst, cnf)
		}
	}
	return dst
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
