package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// Device is the driver-facing view of an I/O device.
type Device interface {
	ID() string
	IsIdle() bool
	Execute(inst hardware.Instruction) error
}

type ioRequest struct {
	pcb         *PCB
	instruction hardware.Instruction
}

// IOController drives a single-unit device: at most one PCB is being served
// and the rest wait in FIFO order.
type IOController struct {
	device  Device
	current *PCB
	waiting []ioRequest
}

// NewIOController creates a controller for device.
func NewIOController(device Device) *IOController {
	if device == nil {
		panic("NewIOController: device must not be nil")
	}
	return &IOController{device: device}
}

// RequestIO marks pcb WAITING and starts inst at once if the device is idle,
// otherwise queues the request.
func (c *IOController) RequestIO(pcb *PCB, inst hardware.Instruction) error {
	if err := pcb.setState(StateWaiting); err != nil {
		return fmt.Errorf("request io: %w", err)
	}
	if c.device.IsIdle() && c.current == nil {
		return c.start(ioRequest{pcb: pcb, instruction: inst})
	}
	c.waiting = append(c.waiting, ioRequest{pcb: pcb, instruction: inst})
	logrus.Debugf("pid %d queued on %s (%d waiting)", pcb.PID, c.device.ID(), len(c.waiting))
	return nil
}

// CollectFinished returns the PCB whose operation just completed and clears
// the current slot.
func (c *IOController) CollectFinished() (*PCB, error) {
	if c.current == nil {
		return nil, fmt.Errorf("%s: %w", c.device.ID(), ErrNothingToCollect)
	}
	finished := c.current
	c.current = nil
	return finished, nil
}

// DispatchNextWaiting starts the oldest waiting request if the device is
// idle. An empty waiting queue is not an error.
func (c *IOController) DispatchNextWaiting() error {
	if len(c.waiting) == 0 || !c.device.IsIdle() || c.current != nil {
		return nil
	}
	next := c.waiting[0]
	c.waiting[0] = ioRequest{}
	c.waiting = c.waiting[1:]
	return c.start(next)
}

func (c *IOController) start(req ioRequest) error {
	if err := c.device.Execute(req.instruction); err != nil {
		return fmt.Errorf("pid %d: %w", req.pcb.PID, err)
	}
	c.current = req.pcb
	logrus.Debugf("pid %d running %s on %s", req.pcb.PID, req.instruction, c.device.ID())
	return nil
}

// Current returns the PCB being served, or nil.
func (c *IOController) Current() *PCB { return c.current }

// WaitingLen returns the number of queued requests.
func (c *IOController) WaitingLen() int { return len(c.waiting) }

// Contains reports whether pcb is current or waiting.
func (c *IOController) Contains(pcb *PCB) bool {
	if c.current == pcb {
		return true
	}
	for _, r := range c.waiting {
		if r.pcb == pcb {
			return true
		}
	}
	return false
}

func (c *IOController) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "IOController(%s) running: ", c.device.ID())
	if c.current == nil {
		sb.WriteString("none")
	} else {
		fmt.Fprintf(&sb, "%d", c.current.PID)
	}
	sb.WriteString(" waiting: [")
	for i, r := range c.waiting {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d", r.pcb.PID)
	}
	sb.WriteString("]")
	return sb.String()
}
