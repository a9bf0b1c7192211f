package plugin

import (
	"fmt"
	"sort"

	"digital.vasic.typeassert/pkg/matcher"
)

// CheckSet is a Plugin made of a fixed table of checks.
type CheckSet struct {
	name    string
	version string
	checks  map[string]matcher.Check
}

// Checks creates a CheckSet plugin.
func Checks(name, version string, checks map[string]matcher.Check) *CheckSet {
	return &CheckSet{name: name, version: version, checks: checks}
}

func (c *CheckSet) Name() string    { return c.name }
func (c *CheckSet) Version() string { return c.version }

// Init registers every check in name order. It stops at the first
// name the engine already knows.
func (c *CheckSet) Init(ctx *PluginContext) error {
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Engine.Register(name, c.checks[name]); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}
