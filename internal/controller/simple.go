package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	m "covtree.dev/pkg/covtree/internal/model"
	pkg "covtree.dev/pkg/covtree/pkg"
)

var (
	deltaUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	deltaDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDistribution prints a coverage table for every metric of the tree.
func (s *SimpleUI) DisplayDistribution(ctx context.Context, root *m.Node, tag language.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", renderDistributionTable(root, tag))

	return nil
}

func renderDistributionTable(root *m.Node, tag language.Tag) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Metric", "Covered", "Missed", "Total", "Percentage"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, metric := range root.Metrics() {
		coverage := root.Coverage(metric)

		table.Append([]string{
			metric.String(),
			fmt.Sprintf("%d", coverage.Covered()),
			fmt.Sprintf("%d", coverage.Missed()),
			fmt.Sprintf("%d", coverage.Total()),
			coverage.FormatCoveredPercentage(tag),
		})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayDelta prints the percentage-point difference per metric, colored
// by sign.
func (s *SimpleUI) DisplayDelta(ctx context.Context, metrics []m.Metric, deltas map[m.Metric]pkg.Ratio, tag language.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Metric", "Delta"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	printer := message.NewPrinter(tag)

	for _, metric := range metrics {
		delta, ok := deltas[metric]
		if !ok {
			continue
		}

		rendered := printer.Sprintf("%+.2f%%", delta.Float64()*100)

		switch {
		case delta.Num() > 0:
			rendered = deltaUpStyle.Render(rendered)
		case delta.Num() < 0:
			rendered = deltaDownStyle.Render(rendered)
		}

		table.Append([]string{metric.String(), rendered})
	}

	table.Render()

	s.printf("%s\n", tableBuffer.String())

	return nil
}

// DisplaySaved confirms the output path of a transformed tree.
func (s *SimpleUI) DisplaySaved(ctx context.Context, path string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Wrote %s\n", path)
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
