package export

import (
	"fmt"
	"strings"

	"cardsmith/internal/content"
)

// Input is the content snapshot the pipeline reads. Slices come straight
// from store.Items(); the pipeline never mutates them.
type Input struct {
	Cards  []content.CardDescriptor
	Events []content.EventDescriptor
	Images []content.ImageDescriptor
}

// Export builds the game-world document from a content snapshot.
//
// Action-type cards produce one CardData per condition (a conditionless card
// gets a single maximal-range default condition so it is always reachable).
// Event-type cards produce one EventCard each, keyed by card id. Events with
// an initial card produce one WorldEvent; events without one are skipped.
func Export(in Input) GameWorld {
	imageSrc := make(map[string]string, len(in.Images))
	for _, img := range in.Images {
		imageSrc[img.ID] = img.Src
	}

	world := GameWorld{
		Cards:      []CardData{},
		Events:     []WorldEvent{},
		EventCards: map[string]EventCard{},
	}

	for _, card := range in.Cards {
		if card.Type == content.CardEvent {
			world.EventCards[card.ID] = exportEventCard(card, imageSrc)
			continue
		}
		world.Cards = append(world.Cards, exportCard(card, imageSrc)...)
	}

	for _, event := range in.Events {
		if event.InitialCardID == "" {
			continue
		}
		world.Events = append(world.Events, exportEvent(event))
	}

	return world
}

// exportCard expands an action-type card into one CardData per condition.
func exportCard(card content.CardDescriptor, imageSrc map[string]string) []CardData {
	left, right := resolveActions(card.Actions)

	shared := CardData{
		Image:    imageSrc[card.ImageID],
		Title:    card.Name,
		Text:     card.Text,
		Distance: card.Location,
		Actions: CardActions{
			Left:  exportCardAction(left),
			Right: exportCardAction(right),
		},
	}

	if len(card.Conditions) == 0 {
		data := shared
		data.ID = card.ID
		data.Weight = defaultWeight(card.Weight)
		data.IsAvailableWhen = []WorldQuery{defaultQuery()}
		return []CardData{data}
	}

	out := make([]CardData, 0, len(card.Conditions))
	for i, cond := range card.Conditions {
		data := shared
		data.ID = conditionCardID(card.ID, i, len(card.Conditions))
		data.Weight = cond.Weight
		data.IsAvailableWhen = []WorldQuery{exportQuery(cond)}
		out = append(out, data)
	}
	return out
}

// conditionCardID derives the exported record id. A card with a single
// exported record keeps its own id; multi-condition cards get an index
// suffix so record ids stay unique.
func conditionCardID(cardID string, index, total int) string {
	if total <= 1 {
		return cardID
	}
	return fmt.Sprintf("%s#%d", cardID, index)
}

// exportEventCard builds the single exported record for an event-type card.
func exportEventCard(card content.CardDescriptor, imageSrc map[string]string) EventCard {
	left, right := resolveActions(card.Actions)
	return EventCard{
		ID:    card.ID,
		Image: imageSrc[card.ImageID],
		Title: card.Name,
		Text:  card.Text,
		Actions: EventCardActions{
			Left:  exportEventCardAction(left),
			Right: exportEventCardAction(right),
		},
	}
}

// exportEvent builds one WorldEvent. Events with no conditions trigger under
// the maximal default query, mirroring conditionless cards.
func exportEvent(event content.EventDescriptor) WorldEvent {
	queries := make([]WorldQuery, 0, len(event.Conditions))
	for _, cond := range event.Conditions {
		queries = append(queries, exportQuery(cond))
	}
	if len(queries) == 0 {
		queries = []WorldQuery{defaultQuery()}
	}
	return WorldEvent{
		Probability:        event.Weight,
		ShouldTriggerWhen:  queries,
		InitialEventCardID: event.InitialCardID,
	}
}

// resolveActions picks the left and right action slots by id,
// case-insensitively. A missing slot yields (zero, false); the exporters
// turn that into the neutral default action.
func resolveActions(actions []content.ActionData) (left, right *content.ActionData) {
	for i := range actions {
		switch {
		case strings.EqualFold(actions[i].ActionID, content.ActionLeft):
			left = &actions[i]
		case strings.EqualFold(actions[i].ActionID, content.ActionRight):
			right = &actions[i]
		}
	}
	return left, right
}

// exportCardAction converts action data to the wire form. A nil action
// exports the neutral default: empty modifier, no description.
func exportCardAction(a *content.ActionData) CardActionData {
	if a == nil {
		return CardActionData{Modifier: Modifier{}}
	}
	return CardActionData{
		Description: a.Description,
		Modifier:    exportModifier(a),
	}
}

// exportEventCardAction is exportCardAction plus the forward link.
func exportEventCardAction(a *content.ActionData) EventCardActionData {
	if a == nil {
		return EventCardActionData{Modifier: Modifier{}}
	}
	return EventCardActionData{
		Description:     a.Description,
		Modifier:        exportModifier(a),
		NextEventCardID: a.NextCardID,
	}
}

func exportModifier(a *content.ActionData) Modifier {
	m := Modifier{Type: string(a.ModifierType)}
	if len(a.Values) > 0 {
		m.State = make(map[string]float64, len(a.Values))
		for k, v := range a.Values {
			m.State[k] = v
		}
	}
	if len(a.Flags) > 0 {
		m.Flags = make(map[string]bool, len(a.Flags))
		for k, v := range a.Flags {
			m.Flags[k] = v
		}
	}
	return m
}

// exportQuery converts a condition to a world query. The four standard
// parameters default to the full range and are overridden per key by the
// condition's values; any extra parameter ids the condition mentions are
// carried through verbatim. Flags get no defaulting but the object is always
// present in the output, even when empty.
func exportQuery(cond content.CardCondition) WorldQuery {
	q := WorldQuery{State: defaultState(), Flags: make(map[string]bool, len(cond.Flags))}
	for id, r := range cond.Values {
		q.State[id] = r
	}
	for k, v := range cond.Flags {
		q.Flags[k] = v
	}
	return q
}

// defaultQuery is the maximal-range query used for conditionless content:
// all four standard parameters unconstrained, no flags set.
func defaultQuery() WorldQuery {
	return WorldQuery{State: defaultState(), Flags: map[string]bool{}}
}

func defaultState() map[string]content.Range {
	state := make(map[string]content.Range, len(content.StandardValueParameters))
	for _, id := range content.StandardValueParameters {
		state[id] = content.DefaultParameterRange
	}
	return state
}

// defaultWeight falls back to 1 so zero-weight conditionless cards stay
// drawable.
func defaultWeight(w float64) float64 {
	if w == 0 {
		return 1
	}
	return w
}
