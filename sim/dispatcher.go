package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// ProgramCounter is the part of the CPU the dispatcher drives.
type ProgramCounter interface {
	PC() int
	SetPC(pc int)
	IsBusy() bool
}

// BaseRegister is the MMU relocation register.
type BaseRegister interface {
	SetBaseDir(base int)
}

// Rearmer restarts the quantum countdown.
type Rearmer interface {
	Reset()
}

// Dispatcher moves processes on and off the CPU.
type Dispatcher struct {
	cpu   ProgramCounter
	mmu   BaseRegister
	timer Rearmer
}

// NewDispatcher creates a dispatcher over the given hardware.
func NewDispatcher(cpu ProgramCounter, mmu BaseRegister, timer Rearmer) *Dispatcher {
	if cpu == nil || mmu == nil || timer == nil {
		panic("NewDispatcher: cpu, mmu and timer must not be nil")
	}
	return &Dispatcher{cpu: cpu, mmu: mmu, timer: timer}
}

// Load restores pcb onto the CPU with a fresh quantum and marks it RUNNING.
// pcb must be READY and the CPU must be free.
func (d *Dispatcher) Load(pcb *PCB) error {
	if d.cpu.IsBusy() {
		return fmt.Errorf("load pid %d: %w", pcb.PID, ErrCPUBusy)
	}
	if err := pcb.setState(StateRunning); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	d.cpu.SetPC(pcb.PC)
	d.mmu.SetBaseDir(pcb.BaseDir)
	d.timer.Reset()
	logrus.Debugf("dispatch load pid=%d pc=%d base=%d", pcb.PID, pcb.PC, pcb.BaseDir)
	return nil
}

// Save copies the CPU program counter into pcb and leaves the CPU idle. It
// does not change pcb.State; the caller decides where the process goes.
func (d *Dispatcher) Save(pcb *PCB) {
	pcb.PC = d.cpu.PC()
	d.cpu.SetPC(hardware.IdlePC)
	logrus.Debugf("dispatch save pid=%d pc=%d", pcb.PID, pcb.PC)
}
