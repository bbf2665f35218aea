package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// newTestKernel builds a kernel on a small machine with a 3-tick I/O device.
func newTestKernel(t *testing.T, scheduler string, quantum int) (*Kernel, *hardware.Hardware) {
	t.Helper()
	hw := hardware.New(hardware.Config{MemorySize: 256, Quantum: quantum, IODuration: 3})
	k, err := NewKernel(hw, Config{Scheduler: scheduler})
	require.NoError(t, err)
	return k, hw
}

func cpuProgram(name string, n int) *Program {
	return MustProgram(name, hardware.CPUBurst(n))
}

// run submits program and returns its PCB.
func run(t *testing.T, k *Kernel, program *Program, priority int) *PCB {
	t.Helper()
	before := k.PCBTable().Len()
	require.NoError(t, k.Run(program, priority))
	pcb := k.PCBTable().Get(before)
	require.NotNil(t, pcb)
	return pcb
}

// fakeCPU, fakeMMU and fakeTimer stand in for the hardware in dispatcher tests.
type fakeCPU struct{ pc int }

func (c *fakeCPU) PC() int { return c.pc }
func (c *fakeCPU) SetPC(pc int) { c.pc = pc }
func (c *fakeCPU) IsBusy() bool { return c.pc >= 0 }

type fakeMMU struct{ base int }

func (m *fakeMMU) SetBaseDir(base int) { m.base = base }

type fakeTimer struct{ resets int }

func (t *fakeTimer) Reset() { t.resets++ }

// fakeDevice records executed instructions and lets tests flip idleness.
type fakeDevice struct {
	idle     bool
	executed []hardware.Instruction
}

func (d *fakeDevice) ID() string { return "fake" }
func (d *fakeDevice) IsIdle() bool { return d.idle }
func (d *fakeDevice) Execute(inst hardware.Instruction) error {
	if !d.idle {
		return hardware.ErrDeviceBusy
	}
	d.idle = false
	d.executed = append(d.executed, inst)
	return nil
}

// runningPCB returns a PCB already in state RUNNING.
func runningPCB(pid, priority int) *PCB {
	return &PCB{PID: pid, Priority: priority, State: StateRunning}
}
