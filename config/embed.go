package config

import _ "embed"

// DefaultConfigYAML built-in defaults, overridden by external files and LEDGER_* env vars
//
//go:embed default.yaml
var DefaultConfigYAML []byte
