package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestReindex_AlreadyDense(t *testing.T) {
	members := []Member{
		{ID: "a", Ordering: intPtr(0)},
		{ID: "b", Ordering: intPtr(1)},
		{ID: "c", Ordering: intPtr(2)},
	}

	assert.Empty(t, Reindex(members))
}

func TestReindex_ClosesGapAfterDelete(t *testing.T) {
	// Middle row was deleted; survivors hold 0 and 2.
	members := []Member{
		{ID: "a", Ordering: intPtr(0)},
		{ID: "c", Ordering: intPtr(2)},
	}

	changes := Reindex(members)
	assert.Equal(t, []Change{{ID: "c", Ordering: 1}}, changes)
}

func TestReindex_NilOrderingSortsLast(t *testing.T) {
	members := []Member{
		{ID: "legacy", Ordering: nil},
		{ID: "a", Ordering: intPtr(0)},
		{ID: "b", Ordering: intPtr(1)},
	}

	changes := Reindex(members)
	assert.Equal(t, []Change{{ID: "legacy", Ordering: 2}}, changes)
}

func TestReindex_StableOnTies(t *testing.T) {
	members := []Member{
		{ID: "a", Ordering: intPtr(1)},
		{ID: "b", Ordering: intPtr(1)},
	}

	changes := Reindex(members)
	assert.Equal(t, []Change{{ID: "a", Ordering: 0}}, changes)
}

func TestApply_FullReorder(t *testing.T) {
	members := []Member{
		{ID: "c1", Ordering: intPtr(0)},
		{ID: "c2", Ordering: intPtr(1)},
		{ID: "c3", Ordering: intPtr(2)},
	}

	changes := Apply([]string{"c3", "c1", "c2"}, members)

	got := map[string]int{}
	for _, ch := range changes {
		got[ch.ID] = ch.Ordering
	}
	assert.Equal(t, map[string]int{"c3": 0, "c1": 1, "c2": 2}, got)
}

func TestApply_PartialListKeepsScopeDense(t *testing.T) {
	members := []Member{
		{ID: "a", Ordering: intPtr(0)},
		{ID: "b", Ordering: intPtr(1)},
		{ID: "c", Ordering: intPtr(2)},
	}

	// Only "c" listed: it moves first, the rest follow in stored order.
	changes := Apply([]string{"c"}, members)

	got := map[string]int{}
	for _, ch := range changes {
		got[ch.ID] = ch.Ordering
	}
	assert.Equal(t, map[string]int{"c": 0, "a": 1, "b": 2}, got)
}

func TestApply_IgnoresForeignAndDuplicateIDs(t *testing.T) {
	members := []Member{
		{ID: "a", Ordering: intPtr(0)},
		{ID: "b", Ordering: intPtr(1)},
	}

	changes := Apply([]string{"intruder", "b", "b", "a"}, members)

	got := map[string]int{}
	for _, ch := range changes {
		got[ch.ID] = ch.Ordering
	}
	assert.Equal(t, map[string]int{"b": 0, "a": 1}, got)
}

func TestApply_NoChangesWhenOrderMatches(t *testing.T) {
	members := []Member{
		{ID: "a", Ordering: intPtr(0)},
		{ID: "b", Ordering: intPtr(1)},
	}

	assert.Empty(t, Apply([]string{"a", "b"}, members))
}
