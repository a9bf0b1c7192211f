package plugin

import (
	"fmt"

	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
)

// Install registers plugins in a fresh registry and initializes
// them against engine. A nil logger discards plugin logs.
func Install(engine *matcher.Engine, logger logging.Logger, config map[string]any, plugins ...Plugin) (*Registry, error) {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	reg := NewRegistry()
	for _, p := range plugins {
		if err := reg.Register(p); err != nil {
			return nil, fmt.Errorf("load plugin: %w", err)
		}
	}
	ctx := &PluginContext{Engine: engine, Logger: logger, Config: config}
	if err := reg.InitAll(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}
