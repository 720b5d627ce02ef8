// Package ordering computes dense re-index plans for sibling collections.
//
// Every ordered child collection (cards in a group, plot points in a scenario,
// manuscript blocks in a project) keeps its ordering column as a gap-free
// 0..N-1 sequence. The planners here are pure: they take the current members
// of one sibling scope and return only the rows whose stored ordering must
// change, which the repositories then write inside the mutating transaction.
package ordering

import "sort"

// Member is one row of a sibling scope as currently stored. A nil Ordering
// (legacy rows, or rows created before ordering existed) sorts last.
type Member struct {
	ID       string
	Ordering *int
}

// Change assigns a new ordering value to one row.
type Change struct {
	ID       string
	Ordering int
}

// Reindex plans the re-numbering of members to a dense 0..N-1 sequence,
// preserving their current relative order (nil orderings last, ties kept
// stable). Rows already holding their computed value are omitted to avoid
// needless writes.
func Reindex(members []Member) []Change {
	sorted := make([]Member, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Ordering, sorted[j].Ordering
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	var changes []Change
	for i, m := range sorted {
		if m.Ordering == nil || *m.Ordering != i {
			changes = append(changes, Change{ID: m.ID, Ordering: i})
		}
	}
	return changes
}

// Apply plans an explicit reorder: ids listed in orderedIDs take their list
// position, and members not listed keep their relative order after all listed
// ones (callers are expected to send the complete id set, but a partial list
// must still leave the scope dense). Ids that do not belong to the scope are
// ignored rather than leaking writes into another scope.
func Apply(orderedIDs []string, members []Member) []Change {
	inScope := make(map[string]Member, len(members))
	for _, m := range members {
		inScope[m.ID] = m
	}

	next := 0
	assigned := make(map[string]int, len(members))
	for _, id := range orderedIDs {
		if _, ok := inScope[id]; !ok {
			continue
		}
		if _, dup := assigned[id]; dup {
			continue
		}
		assigned[id] = next
		next++
	}

	// Unlisted members follow, in their current stored order.
	var rest []Member
	for _, m := range members {
		if _, ok := assigned[m.ID]; !ok {
			rest = append(rest, m)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i].Ordering, rest[j].Ordering
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	for _, m := range rest {
		assigned[m.ID] = next
		next++
	}

	var changes []Change
	for _, m := range members {
		want := assigned[m.ID]
		if m.Ordering == nil || *m.Ordering != want {
			changes = append(changes, Change{ID: m.ID, Ordering: want})
		}
	}
	return changes
}
