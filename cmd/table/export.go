package table

import (
	"github.com/spf13/cobra"
	"github.com/thermalkit/isp2go/internal/persistence"
	"github.com/thermalkit/isp2go/internal/ui"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the frame rate throttle table as JSON",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		tab, err := loadTable()
		if err != nil {
			return err
		}

		if err = persistence.ExportTableSnapshot(exportPath, tab); err != nil {
			return err
		}

		ui.Success("Exported throttle table to: %s", exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(
		&exportPath,
		"output", "o",
		"isp2go_table.json",
		"Path of the JSON file to write",
	)
	Command.AddCommand(exportCmd)
}
