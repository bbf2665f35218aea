package hardware

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrDeviceBusy is returned when an instruction is sent to a busy device.
var ErrDeviceBusy = errors.New("device busy")

// IODevice runs one I/O instruction at a time. Each operation takes a fixed
// number of ticks, after which the device goes idle and raises IO_OUT.
type IODevice struct {
	id        string
	vector    *InterruptVector
	duration  int
	remaining int
	current   Instruction
	busy      bool
}

// NewIODevice creates an idle device whose operations last duration ticks.
func NewIODevice(id string, vector *InterruptVector, duration int) *IODevice {
	if duration <= 0 {
		panic(fmt.Sprintf("NewIODevice: duration must be positive, got %d", duration))
	}
	return &IODevice{id: id, vector: vector, duration: duration}
}

func (d *IODevice) ID() string { return d.id }

// IsIdle reports whether the device can accept an instruction.
func (d *IODevice) IsIdle() bool { return !d.busy }

// Execute starts inst on the device.
func (d *IODevice) Execute(inst Instruction) error {
	if d.busy {
		return fmt.Errorf("%s executing %s: %w", d.id, d.current, ErrDeviceBusy)
	}
	d.busy = true
	d.current = inst
	d.remaining = d.duration
	logrus.Debugf("%s started %s (%d ticks)", d.id, inst, d.duration)
	return nil
}

func (d *IODevice) Tick(tick int64) error {
	if !d.busy {
		return nil
	}
	d.remaining--
	if d.remaining > 0 {
		return nil
	}
	d.busy = false
	logrus.Debugf("[tick %d] %s finished %s", tick, d.id, d.current)
	d.current = ""
	return d.vector.Handle(IRQ{Kind: KindIOOut})
}

func (d *IODevice) String() string {
	if !d.busy {
		return fmt.Sprintf("IODevice(%s, idle)", d.id)
	}
	return fmt.Sprintf("IODevice(%s, %s, %d ticks left)", d.id, d.current, d.remaining)
}
