package commands

import (
	"fteplan/internal/config"
	"fteplan/internal/logging"
	"fteplan/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose      bool
	scenarioPath string
	cfg          *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "fteplan",
	Short: "fteplan forecasts R&D staffing baseload from budget and pipeline assumptions",
	Long: `A planning tool that converts a yearly R&D budget and project-type assumptions
(stage mix, conversion rates, durations, staffing profiles) into a month-by-month
FTE forecast with annual and steady-state aggregates. Run without arguments it
serves the forecast engine as MCP tools over stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("fteplan starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// loadScenario resolves the active scenario: the --scenario flag, then the
// FTEPLAN_SCENARIO path, then the built-in baseline.
func loadScenario() (*config.Scenario, error) {
	path := scenarioPath
	if path == "" {
		path = cfg.ScenarioPath
	}
	if path == "" {
		log.Debug().Msg("No scenario file given, using built-in baseline")
		return config.Baseline(), nil
	}
	return config.LoadScenario(path)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a scenario YAML file (default: built-in baseline)")
}
