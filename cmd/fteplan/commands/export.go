package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fteplan/internal/export"
	"fteplan/internal/model"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export forecast tables as CSV or as a live xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario()
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = cfg.ExportDir
		}

		switch exportFormat {
		case "csv":
			res := model.Run(sc.Model)
			paths, err := export.WriteCSVFiles(dir, res)
			if err != nil {
				return err
			}
			for _, p := range paths {
				log.Info().Str("path", p).Msg("Wrote CSV export")
			}
		case "xlsx":
			path := filepath.Join(dir, "fte_model.xlsx")
			if err := export.WriteWorkbook(path, sc.Model); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("Wrote workbook export")
		default:
			return fmt.Errorf("unknown export format %q (want csv or xlsx)", exportFormat)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "output directory (default: FTEPLAN_EXPORT_DIR)")
	rootCmd.AddCommand(exportCmd)
}
