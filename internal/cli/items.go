package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/sink"
)

// itemsCommand creates the command that lists a dataset.
func (c *CLI) itemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "items [dataset.json]",
		Short:             "List the photos in a dataset",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDataset,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Data
			if len(args) == 1 {
				path = args[0]
			}
			items, err := loadItems(path)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			renderItemsTable(cmd.OutOrStdout(), items, cfg.Layout.DisplayScale)
			return nil
		},
	}
}

// renderItemsTable writes one row per item with its tile colour swatch.
func renderItemsTable(w io.Writer, items []masonry.Item, scale float64) {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		id := it.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			"██",
			strconv.Itoa(i + 1),
			id,
			it.Image,
			strconv.FormatFloat(it.NaturalHeight, 'f', -1, 64),
			strconv.FormatFloat(it.RenderHeight(scale), 'f', -1, 64),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "ID", "Image", "Height", "Shown").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(lipgloss.Color(sink.TileColor(items[row].ID)))
			case 1, 2:
				return base.Foreground(colorDim)
			case 4, 5:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return base
		})

	fmt.Fprintln(w, StyleTitle.Render("Photos"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, "  "+StyleNumber.Render(strconv.Itoa(len(items)))+StyleDim.Render(fmt.Sprintf(" items · display scale %g", scale)))
}
