package heroes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tota/internal/sim"
)

func counter(calls *[]string, name string, ok bool) *CondNode {
	return when(func(*Blackboard) bool {
		*calls = append(*calls, name)
		return ok
	})
}

func TestSelectorStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	s := &Selector{Children: []BTNode{counter(&calls, "a", false), counter(&calls, "b", true), counter(&calls, "c", true)}}
	assert.Equal(t, BTSuccess, s.Tick(&Blackboard{}))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestSequenceStopsAtFirstFailure(t *testing.T) {
	var calls []string
	s := seq(counter(&calls, "a", true), counter(&calls, "b", false), counter(&calls, "c", true))
	assert.Equal(t, BTFailure, s.Tick(&Blackboard{}))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestFromTree(t *testing.T) {
	idle := FromTree(seq(when(func(*Blackboard) bool { return false })))
	_, ok := idle(nil, nil, 0)
	assert.False(t, ok)

	var seen int
	attack := FromTree(do(func(bb *Blackboard) bool {
		seen = bb.T
		return bb.Decide(sim.ActAttack, "there")
	}))
	got, ok := attack(nil, nil, 7)
	assert.True(t, ok)
	assert.Equal(t, sim.Intent{Action: sim.ActAttack, Target: "there"}, got)
	assert.Equal(t, 7, seen)
}
