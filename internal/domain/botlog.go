package domain

// BotlogRules drives crawler-log classification. Loaded from YAML;
// an embedded default ships with the binary.
type BotlogRules struct {
	UAGroups  []BotlogUAGroup  `yaml:"ua_groups"`
	URLGroups []BotlogURLGroup `yaml:"url_groups"`
}

// BotlogUAGroup assigns a label to user-agent strings matching any of
// the substrings.
type BotlogUAGroup struct {
	Name     string   `yaml:"name"`
	Contains []string `yaml:"contains"`
}

// BotlogURLGroup assigns a label to request paths matching any of the
// prefixes.
type BotlogURLGroup struct {
	Name     string   `yaml:"name"`
	Prefixes []string `yaml:"prefixes"`
}

// BotlogRow is one classified log line.
type BotlogRow struct {
	Fields    []string
	UAGroup   string
	URLGroup  string
	InSitemap bool
}

// BotlogSummary aggregates hits per group label.
type BotlogSummary struct {
	Group string
	Hits  int
}
