package table

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thermalkit/isp2go/internal/configuration"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/ui"
)

var Command = &cobra.Command{
	Use:              "table",
	Short:            "Throttle table related commands",
	TraverseChildren: true,
}

// loadTable builds the frame rate throttle table from the configured
// calibration block, the same way the daemon does on startup.
func loadTable() (*throttle.Table, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}

	provider := ect.NewProvider(configuration.CurrentConfig.Calibration)
	tab, err := throttle.NewTable(provider, ect.FunctionISP)
	if err != nil {
		return nil, fmt.Errorf("unable to build throttle table: %w", err)
	}
	return tab, nil
}
