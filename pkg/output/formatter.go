package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/danpilch/checkdisk/pkg/health"
	"github.com/danpilch/checkdisk/pkg/state"
)

// Format represents the output format type.
type Format string

const (
	FormatNagios     Format = "nagios"
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatPrometheus Format = "prometheus"
)

// Formatter handles output formatting.
type Formatter struct {
	format  Format
	writer  io.Writer
	display Display
}

// NewFormatter creates a new formatter.
func NewFormatter(format Format, writer io.Writer, display Display) *Formatter {
	return &Formatter{
		format:  format,
		writer:  writer,
		display: display,
	}
}

// Render outputs the overall result in the configured format.
func (f *Formatter) Render(o *health.Overall) error {
	switch f.format {
	case FormatJSON:
		return f.renderJSON(o)
	case FormatTable:
		return f.renderTable(o)
	case FormatPrometheus:
		return WritePrometheus(f.writer, o)
	default:
		return f.renderNagios(o)
	}
}

func (f *Formatter) renderNagios(o *health.Overall) error {
	_, err := fmt.Fprintln(f.writer, Build(o, f.display).Line())
	return err
}

// renderJSON outputs the visible results and the overall verdict as JSON.
func (f *Formatter) renderJSON(o *health.Overall) error {
	report := Build(o, f.display)
	output := struct {
		State    state.State     `json:"state"`
		ExitCode int             `json:"exit_code"`
		Unit     string          `json:"unit"`
		Output   string          `json:"output"`
		Results  []health.Result `json:"results"`
		NotFound []string        `json:"not_found,omitempty"`
	}{
		State:    o.State,
		ExitCode: o.State.ExitCode(),
		Unit:     f.display.Unit.Name,
		Output:   report.Line(),
		Results:  lo.Filter(o.Results, func(r health.Result, _ int) bool { return f.display.Visible(r) }),
		NotFound: o.NotFound,
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

var statusStyles = map[state.State]lipgloss.Style{
	state.OK:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
	state.Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true), // Yellow
	state.Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
	state.Unknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),  // Gray
}

// renderTable outputs results as a styled table.
func (f *Formatter) renderTable(o *health.Overall) error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(f.writer, titleStyle.Render("Disk Space Check"))
	fmt.Fprintln(f.writer, strings.Repeat("═", 60))
	fmt.Fprintln(f.writer)

	var rows [][]string
	for _, r := range o.Results {
		if !f.display.Visible(r) {
			continue
		}
		rows = append(rows, []string{
			r.Record.MountDir,
			r.Record.Device,
			r.Record.FSType,
			humanize.IBytes(uint64(r.Usage.AvailableBytes())),
			humanize.IBytes(uint64(r.Usage.TotalBytes())),
			fmt.Sprintf("%.0f%%", r.FreePercent),
			statusStyles[r.State].Render(r.State.String()),
		})
	}
	for _, name := range o.NotFound {
		rows = append(rows, []string{name, "-", "-", "-", "-", "-", statusStyles[state.Critical].Render("NOT FOUND")})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("MOUNT", "DEVICE", "TYPE", "FREE", "SIZE", "FREE %", "STATE").
		Rows(rows...)

	fmt.Fprintln(f.writer, t)
	fmt.Fprintln(f.writer)
	_, err := fmt.Fprintf(f.writer, "Overall: %s\n", statusStyles[o.State].Render(o.State.String()))
	return err
}
