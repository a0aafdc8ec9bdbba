package service

import (
	"reflect"
	"testing"
)

func TestDiffMembership_MinimalEdits(t *testing.T) {
	t.Parallel()

	diff := DiffMembership([]string{"game:1", "game:2"}, []string{"game:2", "game:3"})

	if !reflect.DeepEqual(diff.Add, []string{"game:3"}) {
		t.Errorf("expected add [game:3], got %v", diff.Add)
	}
	if !reflect.DeepEqual(diff.Remove, []string{"game:1"}) {
		t.Errorf("expected remove [game:1], got %v", diff.Remove)
	}
}

func TestDiffMembership_NoChanges(t *testing.T) {
	t.Parallel()

	diff := DiffMembership([]string{"game:1", "game:2"}, []string{"game:1", "game:2"})

	if !diff.Empty() {
		t.Errorf("expected empty diff, got %+v", diff)
	}
}

func TestDiffMembership_EmptyDesired_RemovesAll(t *testing.T) {
	t.Parallel()

	diff := DiffMembership([]string{"game:1", "game:2"}, nil)

	if len(diff.Add) != 0 {
		t.Errorf("expected no additions, got %v", diff.Add)
	}
	if !reflect.DeepEqual(diff.Remove, []string{"game:1", "game:2"}) {
		t.Errorf("expected remove [game:1 game:2], got %v", diff.Remove)
	}
}

func TestDiffMembership_EmptyCurrent_AddsAll(t *testing.T) {
	t.Parallel()

	diff := DiffMembership(nil, []string{"game:1", "game:2"})

	if !reflect.DeepEqual(diff.Add, []string{"game:1", "game:2"}) {
		t.Errorf("expected add [game:1 game:2], got %v", diff.Add)
	}
	if len(diff.Remove) != 0 {
		t.Errorf("expected no removals, got %v", diff.Remove)
	}
}

func TestDiffMembership_DuplicatesCountOnce(t *testing.T) {
	t.Parallel()

	diff := DiffMembership(
		[]string{"game:1", "game:1"},
		[]string{"game:2", "game:2", "game:1"},
	)

	if !reflect.DeepEqual(diff.Add, []string{"game:2"}) {
		t.Errorf("expected add [game:2], got %v", diff.Add)
	}
	if len(diff.Remove) != 0 {
		t.Errorf("expected no removals, got %v", diff.Remove)
	}
}

func TestDiffMembership_OrderFollowsInput(t *testing.T) {
	t.Parallel()

	diff := DiffMembership(
		[]string{"game:a", "game:b", "game:c"},
		[]string{"game:z", "game:b", "game:y"},
	)

	if !reflect.DeepEqual(diff.Add, []string{"game:z", "game:y"}) {
		t.Errorf("expected add order [game:z game:y], got %v", diff.Add)
	}
	if !reflect.DeepEqual(diff.Remove, []string{"game:a", "game:c"}) {
		t.Errorf("expected remove order [game:a game:c], got %v", diff.Remove)
	}
}

func TestDedupeIDs_PreservesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	out := dedupeIDs([]string{"b", "a", "b", "c", "a"})

	if !reflect.DeepEqual(out, []string{"b", "a", "c"}) {
		t.Errorf("expected [b a c], got %v", out)
	}
}

func TestPromoteID_MovesExistingToFront(t *testing.T) {
	t.Parallel()

	out := promoteID([]string{"a", "b", "c"}, "b")

	if !reflect.DeepEqual(out, []string{"b", "a", "c"}) {
		t.Errorf("expected [b a c], got %v", out)
	}
}

func TestPromoteID_InsertsWhenAbsent(t *testing.T) {
	t.Parallel()

	out := promoteID([]string{"a", "b"}, "x")

	if !reflect.DeepEqual(out, []string{"x", "a", "b"}) {
		t.Errorf("expected [x a b], got %v", out)
	}
}

func TestPromoteID_EmptyCollection(t *testing.T) {
	t.Parallel()

	out := promoteID(nil, "a")

	if !reflect.DeepEqual(out, []string{"a"}) {
		t.Errorf("expected [a], got %v", out)
	}
}
