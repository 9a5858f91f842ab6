package rules

// Rule is one labeled pattern group from the configuration.
type Rule struct {
	// Labels are applied when the rule triggers. Compared and applied
	// in lower case, matching GitHub's label comparison.
	Labels []string `yaml:"labels"`
	// Patterns are the rule's pattern entries, in configuration order.
	Patterns []string `yaml:"patterns"`
}

// Result maps every label mentioned in the configuration to whether it
// should be present on the pull request.
type Result map[string]bool

// Labels returns the labels that evaluated true.
func (r Result) Labels() []string {
	var out []string
	for label, apply := range r {
		if apply {
			out = append(out, label)
		}
	}
	return out
}
