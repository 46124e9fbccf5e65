package export

import "cardsmith/internal/content"

// GameWorld is the exported document the runtime engine consumes.
//
// Cards holds the draw-pool cards, one entry per condition of each
// action-type card. Events holds the triggerable event definitions.
// EventCards holds the linked event-sequence cards keyed by id.
type GameWorld struct {
	Cards      []CardData           `json:"cards"`
	Events     []WorldEvent         `json:"events"`
	EventCards map[string]EventCard `json:"eventCards"`
}

// CardData is one draw-pool card entry.
type CardData struct {
	ID              string       `json:"id"`
	Image           string       `json:"image"`
	Title           string       `json:"title"`
	Text            string       `json:"text"`
	Weight          float64      `json:"weight"`
	Distance        string       `json:"distance"`
	IsAvailableWhen []WorldQuery `json:"isAvailableWhen"`
	Actions         CardActions  `json:"actions"`
}

// CardActions pairs the two player choices of a draw-pool card.
type CardActions struct {
	Left  CardActionData `json:"left"`
	Right CardActionData `json:"right"`
}

// WorldQuery is an eligibility predicate over world state. State holds the
// required range per parameter id; the four standard parameters are always
// present, defaulted to the full range when the source condition does not
// constrain them. Flags are passed through without defaulting; the object is
// always emitted, possibly empty, matching the historical wire shape.
type WorldQuery struct {
	State map[string]content.Range `json:"state"`
	Flags map[string]bool          `json:"flags"`
}

// Modifier describes the world-state change an action applies.
// The zero Modifier serializes as {}, the neutral "do nothing" modifier.
type Modifier struct {
	Type  string             `json:"type,omitempty"`
	State map[string]float64 `json:"state,omitempty"`
	Flags map[string]bool    `json:"flags,omitempty"`
}

// CardActionData is one side (left or right) of a draw-pool card.
type CardActionData struct {
	Description string   `json:"description,omitempty"`
	Modifier    Modifier `json:"modifier"`
}

// EventCardActionData is one side of an event-sequence card. In addition to
// the modifier it can link forward to the next event card.
type EventCardActionData struct {
	Description     string   `json:"description,omitempty"`
	Modifier        Modifier `json:"modifier"`
	NextEventCardID string   `json:"nextEventCardId,omitempty"`
}

// EventCardActions pairs the two player choices of an event card.
type EventCardActions struct {
	Left  EventCardActionData `json:"left"`
	Right EventCardActionData `json:"right"`
}

// EventCard is one linked event-sequence card, keyed by its id in
// GameWorld.EventCards.
type EventCard struct {
	ID      string           `json:"id"`
	Image   string           `json:"image"`
	Title   string           `json:"title"`
	Text    string           `json:"text"`
	Actions EventCardActions `json:"actions"`
}

// WorldEvent is one triggerable event definition. When ShouldTriggerWhen is
// satisfied the event fires with probability proportional to Probability and
// play continues from InitialEventCardID.
type WorldEvent struct {
	Probability        float64      `json:"probability"`
	ShouldTriggerWhen  []WorldQuery `json:"shouldTriggerWhen"`
	InitialEventCardID string       `json:"initialEventCardId"`
}
