package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/debatehub/console/internal/debate"
)

func f(v float64) *float64 { return &v }

func arg(tempID, content string) debate.Argument {
	return debate.Argument{
		Type:    debate.TypeArgument,
		TempID:  tempID,
		Content: content,
	}
}

func TestLedger_AppendOnly(t *testing.T) {
	l := NewLedger()
	l.Seed(nil)

	for i := 0; i < 10; i++ {
		before := l.Len()
		l.Append(arg(fmt.Sprintf("t%d", i), "x"))
		require.Equal(t, before+1, l.Len(), "each argument grows the ledger by exactly one")
	}
	for i := 0; i < 10; i++ {
		require.Equal(t, fmt.Sprintf("t%d", i), l.At(i).TempID, "arrival order is display order")
	}
}

func TestLedger_SeedAppliesOnce(t *testing.T) {
	l := NewLedger()
	l.Seed([]debate.Argument{arg("a", "1"), arg("b", "2")})
	l.Seed([]debate.Argument{arg("c", "3")})
	require.Equal(t, 2, l.Len())
}

func TestLedger_CivilityMergeScenario(t *testing.T) {
	// Seed a, b, c; enrich b; a and c stay untouched.
	l := NewLedger()
	l.Seed([]debate.Argument{arg("a", "1"), arg("b", "2"), arg("c", "3")})

	merged := l.MergeCivility(debate.CivilityEvent{
		TempID:        "b",
		CivilityScore: f(0.8),
		ToxicityScore: f(0.1),
		Flag:          nil,
	})
	require.True(t, merged)
	require.Equal(t, 3, l.Len())

	b := l.At(1)
	require.NotNil(t, b.CivilityScore)
	require.InDelta(t, 0.8, *b.CivilityScore, 1e-9)
	require.NotNil(t, b.ToxicityScore)
	require.InDelta(t, 0.1, *b.ToxicityScore, 1e-9)
	require.Nil(t, b.Flag)

	for _, i := range []int{0, 2} {
		entry := l.At(i)
		require.Nil(t, entry.CivilityScore, "entry %d must be unchanged", i)
		require.Nil(t, entry.ToxicityScore, "entry %d must be unchanged", i)
	}
}

func TestLedger_CivilityMergeIdempotent(t *testing.T) {
	l := NewLedger()
	l.Seed([]debate.Argument{arg("a", "1")})

	ev := debate.CivilityEvent{TempID: "a", CivilityScore: f(0.9), ToxicityScore: f(0.05)}
	require.True(t, l.MergeCivility(ev))
	first := l.Snapshot()

	require.True(t, l.MergeCivility(ev))
	second := l.Snapshot()

	require.Equal(t, len(first), len(second))
	require.InDelta(t, *first[0].CivilityScore, *second[0].CivilityScore, 1e-9)
	require.InDelta(t, *first[0].ToxicityScore, *second[0].ToxicityScore, 1e-9)
}

func TestLedger_MergeUnknownCorrelationIsNoop(t *testing.T) {
	l := NewLedger()
	l.Seed([]debate.Argument{arg("a", "1")})
	before := l.Snapshot()

	require.False(t, l.MergeCivility(debate.CivilityEvent{TempID: "nope", CivilityScore: f(1)}))
	require.False(t, l.MergeCredibility(debate.CredibilityEvent{TempID: "nope", RelevanceScore: f(1)}))

	after := l.Snapshot()
	require.Equal(t, before, after)
}

func TestLedger_CredibilityPartialMergePreservesAbsentFields(t *testing.T) {
	l := NewLedger()
	seeded := arg("a", "1")
	seeded.EvidenceScore = f(0.42)
	l.Seed([]debate.Argument{seeded})

	require.True(t, l.MergeCredibility(debate.CredibilityEvent{
		TempID:           "a",
		RelevanceScore:   f(0.7),
		ConsistencyScore: f(0.6),
		OverallStrength:  f(0.65),
		// EvidenceScore deliberately absent
	}))

	got := l.At(0)
	require.InDelta(t, 0.7, *got.RelevanceScore, 1e-9)
	require.InDelta(t, 0.6, *got.ConsistencyScore, 1e-9)
	require.InDelta(t, 0.65, *got.OverallStrength, 1e-9)
	require.NotNil(t, got.EvidenceScore)
	require.InDelta(t, 0.42, *got.EvidenceScore, 1e-9, "absent field keeps its prior value")
}

func TestLedger_AppendModeratorFallback(t *testing.T) {
	l := NewLedger()
	l.Seed(nil)

	entry := l.AppendModerator(debate.ModeratorEvent{}, "m1", 7, time.Unix(100, 0))
	require.Equal(t, FallbackModeratorContent, entry.Content)
	require.Equal(t, debate.RoleModerator, entry.Role)
	require.Equal(t, int64(0), entry.UserID)
	require.Equal(t, debate.TypeModerator, entry.Type)
	require.Equal(t, 1, l.Len())
}

func TestLedger_ArgumentCountIgnoresSynthetics(t *testing.T) {
	l := NewLedger()
	l.Seed([]debate.Argument{arg("a", "1"), arg("b", "2")})
	l.AppendModerator(debate.ModeratorEvent{FollowUpQuestion: "why?"}, "m1", 7, time.Unix(0, 0))
	l.AppendSystem("take a breath", "s1", 7, time.Unix(0, 0))

	require.Equal(t, 4, l.Len())
	require.Equal(t, 2, l.ArgumentCount())
	require.Equal(t, []string{"1", "2"}, l.ArgumentContents())
}
