package mcp

import (
	"fteplan/internal/config"
)

// resolveScenario loads the scenario named by the tool arguments, falling
// back to the built-in baseline when no path is given.
func (s *Server) resolveScenario(args map[string]interface{}) (*config.Scenario, error) {
	path, _ := args["scenario_path"].(string)
	if path == "" {
		return config.Baseline(), nil
	}
	return config.LoadScenario(path)
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asInt(v interface{}) (int, bool) {
	// JSON numbers arrive as float64.
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
