// Package sim provides the process-scheduling core of the kernel simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - pcb.go: the PCB, its state machine (NEW → READY → RUNNING → ...) and the PCB table
//   - handlers.go: one transition function per interrupt kind
//   - scheduler.go: the four scheduling policies and the ready-queue discipline
//   - kernel.go: wiring, the Run system call and the invariant check run after every handler
//   - rng.go: partitioned, seeded RNG streams used by the workload generator
//
// # Architecture
//
// The kernel is purely reactive. The machine in sim/hardware ticks its
// devices, devices raise interrupts through the interrupt vector, and the
// vector calls the kernel's handler synchronously. A handler runs to
// completion before the next interrupt is accepted, so no locking is needed.
//
// Sub-packages:
//   - sim/hardware/: CPU, memory, MMU, timer, clock, interrupt vector, I/O device
//   - sim/trace/: Gantt chart record, per-process summary, table rendering
//   - sim/workload/: YAML workload files, the seeded program generator and the arrival launcher
//   - sim/internal/testutil/: golden Gantt dataset loader for tests
//
// # Key Interfaces
//
//   - Scheduler: Admit / Next over a ReadyQueue
//   - Preempter: optional timer hook (round-robin)
//   - ProgramCounter, BaseRegister, Rearmer: the hardware the Dispatcher drives
//   - Device: the hardware the IOController drives
//   - ArrivalSource: defers power-off while programs are still due
package sim
