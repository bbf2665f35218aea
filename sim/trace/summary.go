package trace

// State labels the summary understands. They match the kernel's process
// states.
const (
	StateNew        = "NEW"
	StateReady      = "READY"
	StateRunning    = "RUNNING"
	StateWaiting    = "WAITING"
	StateTerminated = "TERMINATED"
)

// ProcessSummary aggregates one process's ticks across a chart.
type ProcessSummary struct {
	PID          int
	FirstTick    int64 // first tick the process appears
	FinishTick   int64 // first tick observed TERMINATED; -1 if never
	RunningTicks int
	ReadyTicks   int
	WaitingTicks int
}

// Turnaround returns ticks from first appearance to termination, or -1 for a
// process that never finished.
func (p ProcessSummary) Turnaround() int64 {
	if p.FinishTick < 0 {
		return -1
	}
	return p.FinishTick - p.FirstTick
}

// ChartSummary aggregates statistics from a Chart.
type ChartSummary struct {
	Ticks           int
	Processes       []ProcessSummary // PID order
	MaxRunning      int              // never above 1 in a correct run
	MeanReadyTicks  float64
	MeanTurnaround  float64 // over finished processes only
	FinishedCount   int
	CPUIdleTicks    int // ticks with no RUNNING process
	ContextSwitches int // ticks where the RUNNING PID differs from the previous tick's
}

// Summarize computes aggregate statistics from a chart.
// Safe for nil or empty charts (returns zero-value fields).
func Summarize(c *Chart) *ChartSummary {
	summary := &ChartSummary{}
	if c == nil || c.Len() == 0 {
		return summary
	}
	summary.Ticks = c.Len()

	byPID := make(map[int]*ProcessSummary)
	prevRunning := -1
	for i, snap := range c.Snapshots {
		running := c.CountState(i, StateRunning)
		if running > summary.MaxRunning {
			summary.MaxRunning = running
		}
		if running == 0 {
			summary.CPUIdleTicks++
		}
		runningPID := -1
		for pid, state := range snap.States {
			ps, ok := byPID[pid]
			if !ok {
				ps = &ProcessSummary{PID: pid, FirstTick: snap.Tick, FinishTick: -1}
				byPID[pid] = ps
			}
			switch state {
			case StateRunning:
				ps.RunningTicks++
				runningPID = pid
			case StateReady:
				ps.ReadyTicks++
			case StateWaiting:
				ps.WaitingTicks++
			case StateTerminated:
				if ps.FinishTick < 0 {
					ps.FinishTick = snap.Tick
				}
			}
		}
		if runningPID >= 0 && runningPID != prevRunning {
			summary.ContextSwitches++
		}
		prevRunning = runningPID
	}

	var readySum, turnaroundSum int64
	for _, pid := range c.PIDs() {
		ps := byPID[pid]
		summary.Processes = append(summary.Processes, *ps)
		readySum += int64(ps.ReadyTicks)
		if ps.FinishTick >= 0 {
			summary.FinishedCount++
			turnaroundSum += ps.Turnaround()
		}
	}
	if len(summary.Processes) > 0 {
		summary.MeanReadyTicks = float64(readySum) / float64(len(summary.Processes))
	}
	if summary.FinishedCount > 0 {
		summary.MeanTurnaround = float64(turnaroundSum) / float64(summary.FinishedCount)
	}
	return summary
}
