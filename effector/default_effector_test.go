package effector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runToConclusion(t *testing.T, expr string, effects []Effect, matches []float64) (Effect, int) {
	t.Helper()
	e := NewDefaultEffector()
	var result Effect
	var idx int
	var err error
	for i := range effects {
		result, idx, err = e.MergeEffects(expr, effects, matches, i, len(effects))
		assert.NoError(t, err)
		if result != Indeterminate {
			break
		}
	}
	return result, idx
}

func TestSomeAllow(t *testing.T) {
	result, idx := runToConclusion(t, someAllow,
		[]Effect{Indeterminate, Allow, Indeterminate},
		[]float64{0, 1, 0})
	assert.Equal(t, Allow, result)
	assert.Equal(t, 1, idx)
}

func TestSomeAllowNoMatch(t *testing.T) {
	result, _ := runToConclusion(t, someAllow,
		[]Effect{Indeterminate, Indeterminate},
		[]float64{0, 0})
	assert.Equal(t, Deny, result)
}

func TestNoDeny(t *testing.T) {
	result, _ := runToConclusion(t, noDeny,
		[]Effect{Indeterminate, Indeterminate},
		[]float64{0, 0})
	assert.Equal(t, Allow, result)

	result, _ = runToConclusion(t, noDeny,
		[]Effect{Deny},
		[]float64{1})
	assert.Equal(t, Deny, result)
}

func TestAllowAndNotDeny(t *testing.T) {
	// allow then deny -> deny overrides, even though allow comes first.
	result, _ := runToConclusion(t, allowAndNotDeny,
		[]Effect{Allow, Deny},
		[]float64{1, 1})
	assert.Equal(t, Deny, result)

	result, _ = runToConclusion(t, allowAndNotDeny,
		[]Effect{Allow, Indeterminate},
		[]float64{1, 0})
	assert.Equal(t, Allow, result)
}

func TestPriority(t *testing.T) {
	result, idx := runToConclusion(t, priorityOrDeny,
		[]Effect{Allow, Deny},
		[]float64{1, 1})
	assert.Equal(t, Allow, result)
	assert.Equal(t, 0, idx)

	result, _ = runToConclusion(t, priorityOrDeny,
		[]Effect{Indeterminate, Indeterminate},
		[]float64{0, 0})
	assert.Equal(t, Deny, result)
}

func TestUnsupportedEffect(t *testing.T) {
	e := NewDefaultEffector()
	_, _, err := e.MergeEffects("bogus", []Effect{Allow}, []float64{1}, 0, 1)
	assert.Error(t, err)
}
