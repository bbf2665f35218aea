package hardware

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config sizes the machine.
type Config struct {
	MemorySize int // instruction cells (must be > 0)
	Quantum    int // timer quantum in ticks (0 = timer disabled)
	IODuration int // ticks per I/O operation (must be > 0)
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{MemorySize: 1024, Quantum: 0, IODuration: 3}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.MemorySize <= 0 {
		return fmt.Errorf("memory_size must be positive, got %d", c.MemorySize)
	}
	if c.Quantum < 0 {
		return fmt.Errorf("quantum must be non-negative, got %d", c.Quantum)
	}
	if c.IODuration <= 0 {
		return fmt.Errorf("io_duration must be positive, got %d", c.IODuration)
	}
	return nil
}

// Hardware wires the devices together. The clock notifies the I/O device
// first and then the timer, which in turn ticks the CPU.
type Hardware struct {
	Memory          *Memory
	MMU             *MMU
	CPU             *CPU
	Timer           *Timer
	Clock           *Clock
	InterruptVector *InterruptVector
	IODevice        *IODevice
}

// New builds a machine from cfg. It panics on an invalid configuration;
// call cfg.Validate first for user-supplied values.
func New(cfg Config) *Hardware {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("hardware.New: %v", err))
	}
	vector := NewInterruptVector()
	memory := NewMemory(cfg.MemorySize)
	mmu := NewMMU(memory)
	cpu := NewCPU(mmu, vector)
	hw := &Hardware{
		Memory:          memory,
		MMU:             mmu,
		CPU:             cpu,
		Timer:           NewTimer(cpu, vector, cfg.Quantum),
		Clock:           NewClock(),
		InterruptVector: vector,
		IODevice:        NewIODevice("printer", vector, cfg.IODuration),
	}
	hw.Clock.AddSubscriber(hw.IODevice)
	hw.Clock.AddSubscriber(hw.Timer)
	return hw
}

// SwitchOn runs the clock until SwitchOff, an error, or maxTicks.
func (h *Hardware) SwitchOn(maxTicks int64) error {
	logrus.Info("---- switching on ----")
	return h.Clock.Run(maxTicks)
}

// SwitchOff stops the clock at the end of the current tick.
func (h *Hardware) SwitchOff() {
	logrus.Info("---- switching off ----")
	h.Clock.Stop()
}

// IsOn reports whether the clock is running and has not been switched off.
func (h *Hardware) IsOn() bool {
	return h.Clock.Running() && !h.Clock.Halted()
}

func (h *Hardware) String() string {
	return fmt.Sprintf("Hardware(%s, mmu.baseDir=%d, %s, tick=%d)", h.CPU, h.MMU.BaseDir(), h.IODevice, h.Clock.Now())
}
