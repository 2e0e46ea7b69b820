package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/serpkit-go/assets"
	"github.com/doeshing/serpkit-go/internal/domain"
)

// LoadBotlogRules reads crawler-log classification rules from path, or
// the embedded defaults when path is empty.
func LoadBotlogRules(path string) (domain.BotlogRules, error) {
	data := assets.DefaultBotlogRulesYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return domain.BotlogRules{}, fmt.Errorf("read botlog rules %s: %w", path, err)
		}
	}

	var rules domain.BotlogRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.BotlogRules{}, fmt.Errorf("parse botlog rules: %w", err)
	}
	if len(rules.UAGroups) == 0 && len(rules.URLGroups) == 0 {
		return domain.BotlogRules{}, domain.NewConfigError("botlog rules", "no ua_groups or url_groups defined")
	}
	return rules, nil
}
