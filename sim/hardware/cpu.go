package hardware

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// IdlePC is the program counter value meaning no process owns the CPU.
const IdlePC = -1

// CPU fetches through the MMU and raises KILL or IO_IN when it decodes EXIT
// or IO. Any other instruction just advances the program counter.
type CPU struct {
	mmu    *MMU
	vector *InterruptVector
	pc     int
	ir     Instruction
}

// NewCPU creates an idle CPU.
func NewCPU(mmu *MMU, vector *InterruptVector) *CPU {
	return &CPU{mmu: mmu, vector: vector, pc: IdlePC}
}

func (c *CPU) PC() int { return c.pc }

func (c *CPU) SetPC(pc int) { c.pc = pc }

// IsBusy reports whether a program is loaded.
func (c *CPU) IsBusy() bool { return c.pc > IdlePC }

// Tick runs one fetch/decode/execute cycle when a program is loaded.
func (c *CPU) Tick(tick int64) error {
	if !c.IsBusy() {
		logrus.Debugf("[tick %d] cpu idle", tick)
		return nil
	}
	inst, err := c.mmu.Fetch(c.pc)
	if err != nil {
		return fmt.Errorf("cpu fetch at pc=%d: %w", c.pc, err)
	}
	c.ir = inst
	c.pc++

	switch {
	case inst.IsExit():
		return c.vector.Handle(IRQ{Kind: KindKill})
	case inst.IsIO():
		return c.vector.Handle(IRQ{Kind: KindIOIn, Params: inst})
	default:
		logrus.Debugf("[tick %d] cpu exec %s pc=%d", tick, inst, c.pc)
		return nil
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("CPU(pc=%d, ir=%s)", c.pc, c.ir)
}
