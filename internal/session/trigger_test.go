package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrigger_FiresOncePerAccumulation(t *testing.T) {
	tr := NewTrigger(5)

	fired := 0
	for count := 1; count <= 12; count++ {
		if tr.Evaluate(count) {
			fired++
			require.Contains(t, []int{5, 10}, count, "unexpected firing point")
		}
	}
	require.Equal(t, 2, fired, "12 arguments with T=5 must fire exactly twice")
}

func TestTrigger_BaselineFromSeed(t *testing.T) {
	tr := NewTrigger(5)
	tr.Reset(7)

	require.False(t, tr.Evaluate(8))
	require.False(t, tr.Evaluate(11))
	require.True(t, tr.Evaluate(12))
	require.False(t, tr.Evaluate(12), "same accumulation must not re-fire")
}

func TestTrigger_DefaultThreshold(t *testing.T) {
	tr := NewTrigger(0)
	require.False(t, tr.Evaluate(4))
	require.True(t, tr.Evaluate(5))
}
