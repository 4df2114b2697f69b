package config

import (
	_ "embed"
	"log"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Default returns the embedded default tables. The embedded file ships with
// the binary and is validated by tests, so a parse failure here is a build
// defect, not a runtime condition.
func Default() Config {
	cfg, err := Parse(defaultsYAML)
	if err != nil {
		log.Fatalf("config: embedded defaults: %v", err)
	}
	return cfg
}
