package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim/trace"
)

// GanttRecorder is a clock subscriber that snapshots every PCB state once per
// tick. It never feeds back into scheduling.
type GanttRecorder struct {
	table *PCBTable
	chart *trace.Chart
}

// NewGanttRecorder creates a recorder over table.
func NewGanttRecorder(table *PCBTable) *GanttRecorder {
	return &GanttRecorder{table: table, chart: trace.NewChart()}
}

func (g *GanttRecorder) Tick(tick int64) error {
	g.Record(tick)
	return nil
}

// Record snapshots the table for tick.
func (g *GanttRecorder) Record(tick int64) {
	logrus.Debugf("[tick %d] gantt snapshot %s", tick, g.table)
	g.chart.Record(tick, g.table.States())
}

// Chart returns the record collected so far.
func (g *GanttRecorder) Chart() *trace.Chart { return g.chart }
