package service

// Membership reconciliation for the symmetric User-Game relation.
//
// Reconciliation is expressed once as a pure diff over identity sets and is
// used from both directions: patching a user's game list and patching a
// game's player list both reduce to the same computation. Repositories turn
// the diff into edge edits executed in one transaction, so the relation is
// never observable in a half-applied state.

// MembershipDiff is the minimal set of edits that turns a current
// membership set into a desired one. Members present in both sets appear in
// neither slice; their reciprocal references are not rewritten.
type MembershipDiff struct {
	Add    []string
	Remove []string
}

// Empty reports whether the diff performs no edits
func (d MembershipDiff) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// DiffMembership computes the minimal additions and removals needed to turn
// current into desired. Duplicate ids within either input count once.
// Slice order follows the input order, which keeps the staged statements
// deterministic.
func DiffMembership(current, desired []string) MembershipDiff {
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	diff := MembershipDiff{}
	seen := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			diff.Add = append(diff.Add, id)
		}
	}

	seen = make(map[string]struct{}, len(current))
	for _, id := range current {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := desiredSet[id]; !ok {
			diff.Remove = append(diff.Remove, id)
		}
	}

	return diff
}

// dedupeIDs returns the ids with duplicates dropped, preserving first-seen order
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// promoteID moves id to the front of ids, inserting it when absent. Used to
// make a linked availability the user's representative slot while keeping
// the rest of the collection in insertion order.
func promoteID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}
