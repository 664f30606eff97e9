package config

import (
	_ "embed"
)

//go:embed runa.yaml
var defaultConfig []byte

// DefaultYAML is the commented runa.yaml written by `runa setup --defaults`.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfig...)
}
