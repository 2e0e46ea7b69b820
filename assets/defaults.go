package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultBotlogRulesYAML contains the embedded default crawler-log
// classification rules.
//
//go:embed defaults/botlog-rules.yaml
var DefaultBotlogRulesYAML []byte
