package workload

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
	"github.com/kernel-sim/kernel-sim/sim/trace"
)

// Result is the outcome of a complete run.
type Result struct {
	Kernel    *sim.Kernel
	Chart     *trace.Chart
	Ticks     int64 // ticks emitted by the clock
	Completed bool  // the kernel switched the machine off
}

// Execute builds a machine and kernel, feeds arrivals through a Launcher and
// runs until power-off, an error or maxTicks (0 = unlimited). On
// ErrHorizonReached the partial result is returned alongside the error.
func Execute(cfg sim.Config, hwCfg hardware.Config, arrivals []Arrival, maxTicks int64) (*Result, error) {
	if len(arrivals) == 0 {
		return nil, errors.New("nothing to run: no programs")
	}
	if err := hwCfg.Validate(); err != nil {
		return nil, err
	}
	hw := hardware.New(hwCfg)
	k, err := sim.NewKernel(hw, cfg)
	if err != nil {
		return nil, err
	}
	launcher := NewLauncher(k, arrivals)
	k.SetArrivalSource(launcher)
	hw.Clock.AddSubscriber(launcher)

	if err := launcher.SubmitDue(0); err != nil {
		return nil, fmt.Errorf("submitting initial programs: %w", err)
	}
	logrus.Infof("starting simulation: %d programs, scheduler=%s, %+v", len(arrivals), k.Scheduler().Name(), hwCfg)

	runErr := hw.SwitchOn(maxTicks)
	res := &Result{
		Kernel:    k,
		Chart:     k.Gantt().Chart(),
		Ticks:     hw.Clock.Now(),
		Completed: k.Shutdown(),
	}
	if runErr != nil {
		if errors.Is(runErr, hardware.ErrHorizonReached) {
			return res, runErr
		}
		return res, fmt.Errorf("simulation halted: %w", runErr)
	}
	return res, nil
}
