package hardware

// Timer sits between the clock and the CPU. With a positive quantum it counts
// the ticks a program has run since the last Reset and raises TIMEOUT instead
// of ticking the CPU once the quantum is used up. A zero quantum disables it.
// The tick spent on TIMEOUT executes no instruction; with a policy that does
// not preempt, the running process still shows as RUNNING for that tick.
type Timer struct {
	cpu     *CPU
	vector  *InterruptVector
	quantum int
	count   int
}

// NewTimer creates a timer driving cpu.
func NewTimer(cpu *CPU, vector *InterruptVector, quantum int) *Timer {
	return &Timer{cpu: cpu, vector: vector, quantum: quantum}
}

// Quantum returns the configured quantum, 0 when disabled.
func (t *Timer) Quantum() int { return t.quantum }

// Reset rearms the quantum countdown.
func (t *Timer) Reset() { t.count = 0 }

func (t *Timer) Tick(tick int64) error {
	if t.quantum > 0 && t.cpu.IsBusy() && t.count >= t.quantum {
		return t.vector.Handle(IRQ{Kind: KindTimeout})
	}
	t.count++
	return t.cpu.Tick(tick)
}
