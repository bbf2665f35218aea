package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueue_Enqueue_AppendsAndMarksReady(t *testing.T) {
	// GIVEN two PCBs coming off the CPU
	rq := &ReadyQueue{}
	a, b := runningPCB(0, 0), runningPCB(1, 0)

	// WHEN both are enqueued
	require.NoError(t, rq.Enqueue(a))
	require.NoError(t, rq.Enqueue(b))

	// THEN order is arrival order and both are READY
	assert.Equal(t, []int{0, 1}, rq.PIDs())
	assert.Equal(t, StateReady, a.State)
	assert.Equal(t, StateReady, b.State)
	assert.Same(t, a, rq.Peek())
}

func TestReadyQueue_Next_Empty_ReturnsError(t *testing.T) {
	rq := &ReadyQueue{}

	pcb, err := rq.Next()

	assert.Nil(t, pcb)
	assert.True(t, errors.Is(err, ErrEmptyReadyQueue))
	assert.Nil(t, rq.Peek())
}

func TestReadyQueue_Next_PopsHead(t *testing.T) {
	rq := &ReadyQueue{}
	a, b := runningPCB(0, 0), runningPCB(1, 0)
	require.NoError(t, rq.Enqueue(a))
	require.NoError(t, rq.Enqueue(b))

	got, err := rq.Next()
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, 1, rq.Len())
	assert.False(t, rq.Contains(a))
	assert.True(t, rq.Contains(b))
}

func TestReadyQueue_InsertByPriority_LowerFirstTiesKeepArrivalOrder(t *testing.T) {
	// GIVEN priorities arriving as 3, 1, 3, 2, 1
	rq := &ReadyQueue{}
	prios := []int{3, 1, 3, 2, 1}
	for pid, p := range prios {
		require.NoError(t, rq.InsertByPriority(runningPCB(pid, p)))
	}

	// THEN lower priorities come first and equal ones stay in arrival order
	assert.Equal(t, []int{1, 4, 3, 0, 2}, rq.PIDs())
}

func TestReadyQueue_Requeue_GoesAheadOfEqualPriority(t *testing.T) {
	// GIVEN a queue [0(p1), 1(p5), 2(p7)]
	rq := &ReadyQueue{}
	require.NoError(t, rq.InsertByPriority(runningPCB(0, 1)))
	require.NoError(t, rq.InsertByPriority(runningPCB(1, 5)))
	require.NoError(t, rq.InsertByPriority(runningPCB(2, 7)))

	// WHEN a preempted priority-5 process is requeued
	require.NoError(t, rq.Requeue(runningPCB(3, 5)))

	// THEN it sits ahead of the queued priority-5 entry
	assert.Equal(t, []int{0, 3, 1, 2}, rq.PIDs())
}

func TestReadyQueue_Insert_IllegalSourceState_Rejected(t *testing.T) {
	// GIVEN a terminated PCB
	rq := &ReadyQueue{}
	pcb := &PCB{PID: 9, State: StateTerminated}

	// WHEN it is enqueued
	err := rq.Enqueue(pcb)

	// THEN the queue refuses it and stays empty
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, 0, rq.Len())
}

func TestReadyQueue_String(t *testing.T) {
	rq := &ReadyQueue{}
	assert.Equal(t, "[]", rq.String())
	require.NoError(t, rq.Enqueue(runningPCB(4, 2)))
	require.NoError(t, rq.Enqueue(runningPCB(6, 1)))
	assert.Equal(t, "[4(p2) 6(p1)]", rq.String())
}
