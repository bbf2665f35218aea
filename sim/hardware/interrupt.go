package hardware

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNoHandler is returned when an interrupt is raised for a kind that has no
// registered handler.
var ErrNoHandler = errors.New("no handler registered")

// Kind identifies an interrupt. The set is closed.
type Kind int

const (
	KindNew Kind = iota
	KindKill
	KindIOIn
	KindIOOut
	KindTimeout
)

// Kinds lists every interrupt kind, in declaration order.
func Kinds() []Kind {
	return []Kind{KindNew, KindKill, KindIOIn, KindIOOut, KindTimeout}
}

func (k Kind) String() string {
	switch k {
	case KindNew:
		return "NEW"
	case KindKill:
		return "KILL"
	case KindIOIn:
		return "IO_IN"
	case KindIOOut:
		return "IO_OUT"
	case KindTimeout:
		return "TIMEOUT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IRQ is a raised interrupt. Params is opaque to the hardware: an
// Instruction for IO_IN, whatever the kernel chooses for NEW, nil otherwise.
type IRQ struct {
	Kind   Kind
	Params any
}

func (irq IRQ) String() string {
	if irq.Params == nil {
		return fmt.Sprintf("IRQ(%s)", irq.Kind)
	}
	return fmt.Sprintf("IRQ(%s, %v)", irq.Kind, irq.Params)
}

// Handler reacts to an interrupt. It runs to completion before the next
// interrupt is accepted.
type Handler func(irq IRQ) error

// InterruptVector maps interrupt kinds to handlers and invokes them
// synchronously.
type InterruptVector struct {
	handlers map[Kind]Handler
}

// NewInterruptVector creates an empty vector.
func NewInterruptVector() *InterruptVector {
	return &InterruptVector{handlers: make(map[Kind]Handler)}
}

// Register installs h for kind, replacing any previous handler.
func (v *InterruptVector) Register(kind Kind, h Handler) {
	if h == nil {
		panic(fmt.Sprintf("Register: nil handler for %s", kind))
	}
	v.handlers[kind] = h
}

// Registered reports whether kind has a handler.
func (v *InterruptVector) Registered(kind Kind) bool {
	_, ok := v.handlers[kind]
	return ok
}

// Handle invokes the handler registered for irq.Kind.
func (v *InterruptVector) Handle(irq IRQ) error {
	h, ok := v.handlers[irq.Kind]
	if !ok {
		return fmt.Errorf("%s: %w", irq.Kind, ErrNoHandler)
	}
	logrus.Debugf("interrupt %s", irq)
	return h(irq)
}
