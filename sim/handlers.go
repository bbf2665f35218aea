package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kernel-sim/kernel-sim/sim/hardware"
)

// NewProcess is the NEW interrupt payload.
type NewProcess struct {
	Program  *Program
	Priority int
}

func (p NewProcess) String() string {
	return fmt.Sprintf("%s prio=%d", p.Program.Name(), p.Priority)
}

// handlerFunc is a state transition over the kernel. It must not block and
// must leave the kernel satisfying CheckInvariants.
type handlerFunc func(k *Kernel, irq hardware.IRQ) error

// interruptHandlers has one entry per hardware.Kind; NewKernel refuses to
// start if any kind is missing.
var interruptHandlers = map[hardware.Kind]handlerFunc{
	hardware.KindNew:     handleNew,
	hardware.KindKill:    handleKill,
	hardware.KindIOIn:    handleIOIn,
	hardware.KindIOOut:   handleIOOut,
	hardware.KindTimeout: handleTimeout,
}

// handleNew loads the program, registers a PCB for it and admits it.
func handleNew(k *Kernel, irq hardware.IRQ) error {
	params, ok := irq.Params.(NewProcess)
	if !ok {
		return fmt.Errorf("unexpected NEW payload %T", irq.Params)
	}
	base, err := k.loader.Load(params.Program)
	if err != nil {
		return err
	}
	pcb := NewPCB(base, params.Program, params.Priority)
	pid := k.table.Add(pcb)
	logrus.Infof("executing program %s as pid %d (prio %d, base %d)", params.Program.Name(), pid, params.Priority, base)
	return k.scheduler.Admit(pcb)
}

// handleKill terminates the running process and hands the CPU on. When
// nothing is left to run and nothing else will arrive, the machine is
// switched off.
func handleKill(k *Kernel, _ hardware.IRQ) error {
	if running := k.table.Running(); running != nil {
		k.dispatcher.Save(running)
		if err := running.setState(StateTerminated); err != nil {
			return err
		}
		logrus.Infof("pid %d (%s) finished", running.PID, running.Path)
	}
	if k.scheduler.Ready().Len() > 0 {
		return k.dispatchNext()
	}
	if k.table.AllTerminated() && k.pendingArrivals() == 0 {
		k.powerOff()
	}
	return nil
}

// handleIOIn moves the running process to the I/O controller and keeps the
// CPU busy if anything is ready.
func handleIOIn(k *Kernel, irq hardware.IRQ) error {
	inst, ok := irq.Params.(hardware.Instruction)
	if !ok {
		return fmt.Errorf("unexpected IO_IN payload %T", irq.Params)
	}
	running := k.table.Running()
	if running == nil {
		return ErrNoRunningProcess
	}
	k.dispatcher.Save(running)
	if err := k.io.RequestIO(running, inst); err != nil {
		return err
	}
	if k.scheduler.Ready().Len() > 0 {
		if err := k.dispatchNext(); err != nil {
			return err
		}
	}
	logrus.Info(k.io)
	return nil
}

// handleIOOut collects the finished process, restarts the device on the next
// waiting request and re-admits the finished process.
func handleIOOut(k *Kernel, _ hardware.IRQ) error {
	pcb, err := k.io.CollectFinished()
	if err != nil {
		return err
	}
	if err := k.io.DispatchNextWaiting(); err != nil {
		return err
	}
	logrus.Infof("pid %d back from io", pcb.PID)
	if err := k.scheduler.Admit(pcb); err != nil {
		return err
	}
	logrus.Info(k.io)
	return nil
}

// handleTimeout gives a preempting policy the chance to rotate the CPU. The
// timer is rearmed whatever happens.
func handleTimeout(k *Kernel, _ hardware.IRQ) error {
	var err error
	if k.scheduler.Ready().Len() > 0 {
		if running := k.table.Running(); running != nil {
			if p, ok := k.scheduler.(Preempter); ok {
				err = p.Preempt(running)
			}
		}
	}
	k.hw.Timer.Reset()
	return err
}
