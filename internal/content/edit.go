package content

import "fmt"

// IndexError reports a condition index outside the current conditions slice.
// Earlier editor revisions silently ignored out-of-range indexes; surfacing
// the error lets callers distinguish a stale index from a successful edit.
type IndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("condition index %d out of range (have %d)", e.Index, e.Len)
}

// AddCondition appends a fresh empty condition (weight 0, no constraints) and
// returns the new slice. The input slice is not mutated.
func AddCondition(conds []CardCondition) []CardCondition {
	out := make([]CardCondition, 0, len(conds)+1)
	out = append(out, CloneConditions(conds)...)
	out = append(out, CardCondition{
		Weight: 0,
		Values: map[string]Range{},
		Flags:  map[string]bool{},
	})
	return out
}

// UpdateCondition merges patch onto the condition at index, returning a new
// slice with all other entries unchanged.
func UpdateCondition(conds []CardCondition, index int, patch ConditionPatch) ([]CardCondition, error) {
	if index < 0 || index >= len(conds) {
		return nil, &IndexError{Index: index, Len: len(conds)}
	}
	out := CloneConditions(conds)
	out[index] = patch.Apply(out[index])
	return out, nil
}

// RemoveCondition removes the condition at index, shifting later entries down
// by one. Removal is index-exact: an out-of-range index is an error, never a
// silent no-op.
func RemoveCondition(conds []CardCondition, index int) ([]CardCondition, error) {
	if index < 0 || index >= len(conds) {
		return nil, &IndexError{Index: index, Len: len(conds)}
	}
	out := make([]CardCondition, 0, len(conds)-1)
	for i, c := range conds {
		if i == index {
			continue
		}
		out = append(out, c.Clone())
	}
	return out, nil
}

// UpdateAction upserts action data by slot: if an entry with the same
// ActionID exists it is replaced in place (position preserved), otherwise the
// data is appended. The result never holds two entries for one ActionID.
func UpdateAction(actions []ActionData, data ActionData) []ActionData {
	for i, a := range actions {
		if a.ActionID == data.ActionID {
			out := CloneActions(actions)
			out[i] = data.Clone()
			return out
		}
	}
	out := make([]ActionData, 0, len(actions)+1)
	out = append(out, CloneActions(actions)...)
	out = append(out, data.Clone())
	return out
}

// FindAction returns the action data for a slot id, if present.
func FindAction(actions []ActionData, actionID string) (ActionData, bool) {
	for _, a := range actions {
		if a.ActionID == actionID {
			return a.Clone(), true
		}
	}
	return ActionData{}, false
}
