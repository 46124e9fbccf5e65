package content

// Range is a closed numeric interval [Min, Max] over a parameter's value.
// Serialized as a two-element JSON array to match the persisted editor format.
type Range [2]float64

// Min returns the lower bound of the range.
func (r Range) Min() float64 { return r[0] }

// Max returns the upper bound of the range.
func (r Range) Max() float64 { return r[1] }

// Contains reports whether v falls within the range (inclusive).
func (r Range) Contains(v float64) bool { return v >= r[0] && v <= r[1] }

// ParameterType distinguishes boolean flags from numeric values.
type ParameterType string

const (
	// ParameterFlag is a boolean world-state variable.
	ParameterFlag ParameterType = "flag"
	// ParameterValue is a numeric world-state variable.
	ParameterValue ParameterType = "value"
)

// CardType distinguishes draw-pool cards from linked event cards.
type CardType string

const (
	// CardAction cards are drawn from the general pool, filtered by their
	// conditions.
	CardAction CardType = "action"
	// CardEvent cards form linked sequences reachable only through an event's
	// initial card or another event card's next-card link. They are excluded
	// from the general pool.
	CardEvent CardType = "event"
)

// ModifierType selects how an action's values are applied to world state.
type ModifierType string

const (
	ModifierAdd     ModifierType = "add"
	ModifierSet     ModifierType = "set"
	ModifierReplace ModifierType = "replace"
)

// ImageDescriptor is a named image reference with informational tags.
// Tags are not validated or deduplicated.
type ImageDescriptor struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Src  string   `json:"src"`
	Tags []string `json:"tags"`
}

// ActionDescriptor is an available action slot (e.g. "Left", "Right").
// The set is mostly static reference data, not authored by end users.
type ActionDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParameterDescriptor is a named world-state variable.
//
// SystemParameter marks parameters the runtime depends on; stores refuse to
// delete them.
type ParameterDescriptor struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Type            ParameterType `json:"type"`
	SystemParameter bool          `json:"systemParameter,omitempty"`
}

// CardCondition is an eligibility predicate: the owning content is eligible
// when every referenced numeric parameter's current value falls inside its
// range and every referenced flag matches. A parameter absent from Values and
// Flags is unconstrained. Weight influences selection probability among
// eligible alternatives; it is consumed by the runtime, not evaluated here.
type CardCondition struct {
	Weight float64          `json:"weight"`
	Values map[string]Range `json:"values"`
	Flags  map[string]bool  `json:"flags"`
}

// ActionData describes what happens when an action slot is chosen: a modifier
// over parameter values and flags, and for event cards an optional forward
// link to the next event card.
//
// NextCardID is only meaningful on cards of type CardEvent.
type ActionData struct {
	ActionID     string             `json:"actionId"`
	Description  string             `json:"description,omitempty"`
	ModifierType ModifierType       `json:"modifierType"`
	Values       map[string]float64 `json:"values"`
	Flags        map[string]bool    `json:"flags"`
	NextCardID   string             `json:"nextCardId,omitempty"`
}

// CardDescriptor is a unit of narrative content.
//
// Invariant: Actions never contains two entries with the same ActionID
// (maintained by UpdateAction). Conditions preserve insertion order; each
// condition is an independent eligibility alternative, order carries no
// evaluation priority.
type CardDescriptor struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	ImageID    string          `json:"imageId,omitempty"`
	Type       CardType        `json:"type"`
	Location   string          `json:"location"`
	Text       string          `json:"text"`
	Weight     float64         `json:"weight"`
	Conditions []CardCondition `json:"conditions"`
	Actions    []ActionData    `json:"actions"`
}

// EventDescriptor is a triggerable narrative arc. When its conditions are
// satisfied it is chosen with probability proportional to Weight and play
// continues from InitialCardID (a CardEvent-type card).
type EventDescriptor struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Weight        float64         `json:"weight"`
	Conditions    []CardCondition `json:"conditions"`
	InitialCardID string          `json:"initialCardId,omitempty"`
}

// EntityID implementations let the generic store key entities by id.

func (i ImageDescriptor) EntityID() string     { return i.ID }
func (a ActionDescriptor) EntityID() string    { return a.ID }
func (p ParameterDescriptor) EntityID() string { return p.ID }
func (c CardDescriptor) EntityID() string      { return c.ID }
func (e EventDescriptor) EntityID() string     { return e.ID }

// WithEntityID implementations return a copy with the id set. Used by stores
// when assigning ids at creation.

func (i ImageDescriptor) WithEntityID(id string) ImageDescriptor { i.ID = id; return i }

func (a ActionDescriptor) WithEntityID(id string) ActionDescriptor { a.ID = id; return a }

func (p ParameterDescriptor) WithEntityID(id string) ParameterDescriptor { p.ID = id; return p }

func (c CardDescriptor) WithEntityID(id string) CardDescriptor { c.ID = id; return c }

func (e EventDescriptor) WithEntityID(id string) EventDescriptor { e.ID = id; return e }

// Clone implementations deep-copy the entity so store snapshots are isolated
// from later mutation of the caller's copy.

func (i ImageDescriptor) Clone() ImageDescriptor {
	i.Tags = cloneSlice(i.Tags)
	return i
}

func (a ActionDescriptor) Clone() ActionDescriptor { return a }

func (p ParameterDescriptor) Clone() ParameterDescriptor { return p }

func (c CardDescriptor) Clone() CardDescriptor {
	c.Conditions = CloneConditions(c.Conditions)
	c.Actions = CloneActions(c.Actions)
	return c
}

func (e EventDescriptor) Clone() EventDescriptor {
	e.Conditions = CloneConditions(e.Conditions)
	return e
}

// Clone returns a deep copy of the condition.
func (c CardCondition) Clone() CardCondition {
	c.Values = cloneMap(c.Values)
	c.Flags = cloneMap(c.Flags)
	return c
}

// Clone returns a deep copy of the action data.
func (a ActionData) Clone() ActionData {
	a.Values = cloneMap(a.Values)
	a.Flags = cloneMap(a.Flags)
	return a
}

// CloneConditions deep-copies a conditions slice. Nil stays nil.
func CloneConditions(conds []CardCondition) []CardCondition {
	if conds == nil {
		return nil
	}
	out := make([]CardCondition, len(conds))
	for i, c := range conds {
		out[i] = c.Clone()
	}
	return out
}

// CloneActions deep-copies an actions slice. Nil stays nil.
func CloneActions(actions []ActionData) []ActionData {
	if actions == nil {
		return nil
	}
	out := make([]ActionData, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
