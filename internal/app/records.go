package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/intake"
)

const cellWidth = 28

func newRecordsCmd() *cobra.Command {
	var (
		limit   int
		rawJSON bool
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List records in the target list file",
		Long:  "Reads the record list from the configured repository and prints the most recent entries.",
		Example: `  ghintake records
  ghintake records --limit 5
  ghintake records --kind catalog --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind != "" {
				cfg.Intake.Kind = kind
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			svc, err := buildService(cfg, buildStore(cfg), zap.NewNop())
			if err != nil {
				return err
			}

			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(list) > limit {
				list = list[len(list)-limit:]
			}

			if rawJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			if len(list) == 0 {
				warn("No records in %s", cfg.Intake.EffectiveListPath())
				return nil
			}
			fmt.Println(renderRecords(svc.Kind(), list))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show only the last N records (0 for all)")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print records as JSON")
	cmd.Flags().StringVar(&kind, "kind", "", "Form kind: prices or catalog")
	return cmd
}

// renderRecords lays the records out as a table using the kind's columns.
// Entries that are not JSON objects show as a single raw cell.
func renderRecords(kind intake.Kind, list []json.RawMessage) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	emptyStyle := cellStyle.Foreground(lipgloss.Color("240"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(kind.Columns...)

	empty := map[[2]int]bool{}
	for r, raw := range list {
		row := make([]string, len(kind.Columns))
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			row[0] = xansi.Truncate(string(raw), cellWidth, "…")
			t.Row(row...)
			continue
		}
		for c, col := range kind.Columns {
			v, present := obj[col]
			if !present || v == nil {
				row[c] = "-"
				empty[[2]int{r, c}] = true
				continue
			}
			row[c] = xansi.Truncate(formatCell(v), cellWidth, "…")
		}
		t.Row(row...)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case empty[[2]int{row, col}]:
			return emptyStyle
		default:
			return cellStyle
		}
	})
	return t.String()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}
