package main

import (
	"flag"
	"fmt"
	"fteplan/cmd/scenariogen/engine"
	"os"
)

func main() {
	shape := flag.String("shape", "balanced", "Scenario shape to generate: balanced, topheavy, lean")
	outDir := flag.String("out", "./scenarios", "Output directory for scenario files")
	count := flag.Int("count", 5, "Number of scenarios to generate")
	seed := flag.Int64("seed", 0, "Random seed (0 uses a time-based seed)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Shape: *shape,
		Count: *count,
		Seed:  *seed,
	}

	fmt.Printf("Generating %d '%s' scenarios to %s...\n", cfg.Count, cfg.Shape, *outDir)

	scenarios, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate scenarios: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, scenarios); err != nil {
		fmt.Printf("Failed to save scenarios: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
