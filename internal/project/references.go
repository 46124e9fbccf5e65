package project

import (
	"fmt"

	"cardsmith/internal/content"
)

// DanglingReference records a cross-entity reference whose target no longer
// exists. Dangling references are legal (consumers resolve them to "no
// selection") but authors usually want to know about them.
type DanglingReference struct {
	Kind  string `json:"kind"`  // owning entity kind: "card" or "event"
	ID    string `json:"id"`    // owning entity id
	Field string `json:"field"` // referencing field, e.g. "imageId"
	Ref   string `json:"ref"`   // the dangling target id
}

// String renders the reference for text output.
func (d DanglingReference) String() string {
	return fmt.Sprintf("%s %s: %s -> %q (missing)", d.Kind, d.ID, d.Field, d.Ref)
}

// DanglingReferences scans the content graph for references to deleted
// entities: card image ids, event-card forward links, and event initial
// cards. Also reports initial cards that exist but are not event-type.
func (p *Project) DanglingReferences() []DanglingReference {
	var out []DanglingReference

	eventCards := make(map[string]bool)
	for _, card := range p.Cards.Items() {
		if card.Type == content.CardEvent {
			eventCards[card.ID] = true
		}
	}

	for _, card := range p.Cards.Items() {
		if card.ImageID != "" {
			if _, ok := p.Images.Read(card.ImageID); !ok {
				out = append(out, DanglingReference{
					Kind: "card", ID: card.ID, Field: "imageId", Ref: card.ImageID,
				})
			}
		}
		for _, action := range card.Actions {
			if action.NextCardID != "" && !eventCards[action.NextCardID] {
				out = append(out, DanglingReference{
					Kind: "card", ID: card.ID,
					Field: fmt.Sprintf("actions[%s].nextCardId", action.ActionID),
					Ref:   action.NextCardID,
				})
			}
		}
	}

	for _, event := range p.Events.Items() {
		if event.InitialCardID != "" && !eventCards[event.InitialCardID] {
			out = append(out, DanglingReference{
				Kind: "event", ID: event.ID, Field: "initialCardId", Ref: event.InitialCardID,
			})
		}
	}

	return out
}
