package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/checkdisk/pkg/health"
)

// DumpRawUsage outputs the raw block counts behind every evaluated filesystem.
func DumpRawUsage(w io.Writer, results []health.Result) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("Raw Usage Dump"))
	fmt.Fprintln(w, dim.Render(strings.Repeat("═", 85)))
	fmt.Fprintf(w, "  %s %s %s %s %s\n",
		header.Render("MOUNT                   "),
		header.Render("BLOCKS        "),
		header.Render("AVAILABLE     "),
		header.Render("BSIZE   "),
		header.Render("USED% "))
	fmt.Fprintln(w, "  "+dim.Render(strings.Repeat("─", 85)))

	for _, r := range results {
		fmt.Fprintf(w, "  %-25s %-15d %-15d %-9d %d %s\n",
			r.Record.MountDir, r.Usage.TotalBlocks, r.Usage.AvailableBlocks, r.Usage.BlockSize,
			r.UsedPercent, dim.Render(r.Record.Device))
	}
}
