package table

import (
	"bytes"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/thermalkit/isp2go/cmd/global"
	"github.com/thermalkit/isp2go/internal/ui"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the frame rate throttle table to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		tab, err := loadTable()
		if err != nil {
			return err
		}

		snapshot, err := tab.Snapshot()
		if err != nil {
			return err
		}

		rows := [][]string{}
		for _, entry := range snapshot.Entries {
			level := entry.Ordinal
			if snapshot.Direction == "ascending" {
				level = int(snapshot.MaxLevel) - entry.Ordinal
			}
			rows = append(rows, []string{
				strconv.Itoa(level),
				strconv.FormatUint(uint64(entry.Fps), 10),
			})
		}

		// print table
		out := table.Table{
			Headers: []string{"Level", "Max FPS"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := out.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		tableString := buf.String()
		ui.Printfln(tableString)

		values := make([]float64, 0, len(snapshot.Entries))
		for _, entry := range snapshot.Entries {
			values = append(values, float64(entry.Fps))
		}

		caption := "Max FPS / Throttle Level"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
