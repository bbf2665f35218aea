package trace

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RenderOptions controls table output.
type RenderOptions struct {
	Color bool // colour cells by state (ignored when the terminal has no colour)
}

var stateAbbrev = map[string]string{
	StateNew:        "N",
	StateReady:      "R",
	StateRunning:    "X",
	StateWaiting:    "W",
	StateTerminated: "T",
}

var stateColor = map[string]*color.Color{
	StateReady:      color.New(color.FgYellow),
	StateRunning:    color.New(color.FgGreen, color.Bold),
	StateWaiting:    color.New(color.FgCyan),
	StateTerminated: color.New(color.FgHiBlack),
}

func cell(state string, opts RenderOptions) string {
	s, ok := stateAbbrev[state]
	if !ok {
		s = state
	}
	if c, ok := stateColor[state]; ok && opts.Color {
		return c.Sprint(s)
	}
	return s
}

// Row returns pid's timeline with one abbreviation per snapshot and '.' where
// the process did not exist yet.
func (c *Chart) Row(pid int) string {
	var sb strings.Builder
	for _, snap := range c.Snapshots {
		state, ok := snap.States[pid]
		if !ok {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(cell(state, RenderOptions{}))
	}
	return sb.String()
}

// WriteGantt renders the chart as a table with one row per process and one
// column per tick. Legend: N=new R=ready X=running W=waiting T=terminated,
// blank = not yet created.
func WriteGantt(w io.Writer, c *Chart, opts RenderOptions) {
	header := []string{"PID"}
	for _, snap := range c.Snapshots {
		header = append(header, strconv.FormatInt(snap.Tick, 10))
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	for _, pid := range c.PIDs() {
		row := []string{strconv.Itoa(pid)}
		for _, snap := range c.Snapshots {
			state, ok := snap.States[pid]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, cell(state, opts))
		}
		table.Append(row)
	}
	table.Render()
}

// WriteSummary renders per-process statistics followed by aggregate figures.
func WriteSummary(w io.Writer, s *ChartSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "First", "Finish", "Running", "Ready", "Waiting", "Turnaround"})
	table.SetAutoFormatHeaders(false)
	for _, p := range s.Processes {
		finish, turnaround := "-", "-"
		if p.FinishTick >= 0 {
			finish = strconv.FormatInt(p.FinishTick, 10)
			turnaround = strconv.FormatInt(p.Turnaround(), 10)
		}
		table.Append([]string{
			strconv.Itoa(p.PID),
			strconv.FormatInt(p.FirstTick, 10),
			finish,
			strconv.Itoa(p.RunningTicks),
			strconv.Itoa(p.ReadyTicks),
			strconv.Itoa(p.WaitingTicks),
			turnaround,
		})
	}
	table.SetFooter([]string{"", "", "", "", fmt.Sprintf("Mean %.2f", s.MeanReadyTicks), "", fmt.Sprintf("Mean %.2f", s.MeanTurnaround)})
	table.Render()
	_, _ = fmt.Fprintf(w, "Ticks: %d  CPU idle: %d  Context switches: %d\n", s.Ticks, s.CPUIdleTicks, s.ContextSwitches)
}
