package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsmith/internal/content"
)

func fullRangeState() map[string]content.Range {
	return map[string]content.Range{
		content.ParamEnvironment: {0, 100},
		content.ParamPeople:      {0, 100},
		content.ParamSecurity:    {0, 100},
		content.ParamMoney:       {0, 100},
	}
}

// =============================================================================
// Card expansion
// =============================================================================

func TestExport_OneRecordPerCondition(t *testing.T) {
	card := content.CardDescriptor{
		ID:   "card1",
		Name: "Drought",
		Type: content.CardAction,
		Conditions: []content.CardCondition{
			{Weight: 0.3, Values: map[string]content.Range{content.ParamEnvironment: {0, 30}}},
			{Weight: 0.7, Flags: map[string]bool{"introduction-complete": true}},
		},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 2)
	assert.Equal(t, "card1#0", world.Cards[0].ID)
	assert.Equal(t, "card1#1", world.Cards[1].ID)
	assert.Equal(t, 0.3, world.Cards[0].Weight)
	assert.Equal(t, 0.7, world.Cards[1].Weight)

	// Both records share the card's presentation fields.
	assert.Equal(t, "Drought", world.Cards[0].Title)
	assert.Equal(t, "Drought", world.Cards[1].Title)
}

func TestExport_SingleConditionKeepsCardID(t *testing.T) {
	card := content.CardDescriptor{
		ID:         "card1",
		Type:       content.CardAction,
		Conditions: []content.CardCondition{{Weight: 2}},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 1)
	assert.Equal(t, "card1", world.Cards[0].ID)
	assert.Equal(t, float64(2), world.Cards[0].Weight)
}

func TestExport_ConditionlessCardGetsDefaults(t *testing.T) {
	card := content.CardDescriptor{ID: "card1", Type: content.CardAction, Weight: 0}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 1)
	data := world.Cards[0]
	assert.Equal(t, "card1", data.ID)
	// Zero card weight falls back to 1 so the card stays drawable.
	assert.Equal(t, float64(1), data.Weight)
	require.Len(t, data.IsAvailableWhen, 1)
	assert.Equal(t, fullRangeState(), data.IsAvailableWhen[0].State)
	// The flags object is emitted even when nothing is set.
	assert.Equal(t, map[string]bool{}, data.IsAvailableWhen[0].Flags)
}

func TestExport_ConditionlessCardKeepsNonZeroWeight(t *testing.T) {
	card := content.CardDescriptor{ID: "card1", Type: content.CardAction, Weight: 3}
	world := Export(Input{Cards: []content.CardDescriptor{card}})
	require.Len(t, world.Cards, 1)
	assert.Equal(t, float64(3), world.Cards[0].Weight)
}

// =============================================================================
// Query defaulting
// =============================================================================

func TestExport_StandardParametersDefaulted(t *testing.T) {
	card := content.CardDescriptor{
		ID:   "card1",
		Type: content.CardAction,
		Conditions: []content.CardCondition{{
			Weight: 1,
			Values: map[string]content.Range{
				content.ParamMoney: {20, 80},
				"morale":           {0, 10},
			},
			Flags: map[string]bool{"introduction-complete": true},
		}},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 1)
	q := world.Cards[0].IsAvailableWhen[0]

	want := fullRangeState()
	want[content.ParamMoney] = content.Range{20, 80}
	want["morale"] = content.Range{0, 10}
	assert.Equal(t, want, q.State)
	assert.Equal(t, map[string]bool{"introduction-complete": true}, q.Flags)
}

// =============================================================================
// Actions
// =============================================================================

func TestExport_ActionSlotsCaseInsensitive(t *testing.T) {
	card := content.CardDescriptor{
		ID:         "card1",
		Type:       content.CardAction,
		Conditions: []content.CardCondition{{Weight: 1}},
		Actions: []content.ActionData{
			{ActionID: "Left", Description: "go left", ModifierType: content.ModifierAdd,
				Values: map[string]float64{content.ParamMoney: -10}},
			{ActionID: "RIGHT", Description: "go right", ModifierType: content.ModifierSet,
				Flags: map[string]bool{"introduction-complete": true}},
		},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 1)
	actions := world.Cards[0].Actions
	assert.Equal(t, "go left", actions.Left.Description)
	assert.Equal(t, "add", actions.Left.Modifier.Type)
	assert.Equal(t, map[string]float64{content.ParamMoney: -10}, actions.Left.Modifier.State)
	assert.Equal(t, "go right", actions.Right.Description)
	assert.Equal(t, map[string]bool{"introduction-complete": true}, actions.Right.Modifier.Flags)
}

func TestExport_MissingActionSlotIsNeutral(t *testing.T) {
	card := content.CardDescriptor{
		ID:         "card1",
		Type:       content.CardAction,
		Conditions: []content.CardCondition{{Weight: 1}},
		Actions: []content.ActionData{
			{ActionID: content.ActionLeft, ModifierType: content.ModifierAdd},
		},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	require.Len(t, world.Cards, 1)
	right := world.Cards[0].Actions.Right
	assert.Empty(t, right.Description)
	assert.Equal(t, Modifier{}, right.Modifier)
}

// =============================================================================
// Images
// =============================================================================

func TestExport_ImageReferenceResolvesToSrc(t *testing.T) {
	world := Export(Input{
		Cards: []content.CardDescriptor{{
			ID: "card1", Type: content.CardAction, ImageID: "image1",
			Conditions: []content.CardCondition{{Weight: 1}},
		}},
		Images: []content.ImageDescriptor{{ID: "image1", Src: "drought.jpg"}},
	})

	require.Len(t, world.Cards, 1)
	assert.Equal(t, "drought.jpg", world.Cards[0].Image)
}

func TestExport_DanglingImageReferenceExportsEmpty(t *testing.T) {
	world := Export(Input{
		Cards: []content.CardDescriptor{{
			ID: "card1", Type: content.CardAction, ImageID: "gone",
			Conditions: []content.CardCondition{{Weight: 1}},
		}},
	})

	require.Len(t, world.Cards, 1)
	assert.Equal(t, "", world.Cards[0].Image)
}

// =============================================================================
// Event cards and events
// =============================================================================

func TestExport_EventCardsKeyedByID(t *testing.T) {
	card := content.CardDescriptor{
		ID:   "card2",
		Name: "Messenger",
		Type: content.CardEvent,
		Actions: []content.ActionData{
			{ActionID: content.ActionRight, ModifierType: content.ModifierSet,
				Values: map[string]float64{content.ParamSecurity: 50}, NextCardID: "card3"},
		},
	}

	world := Export(Input{Cards: []content.CardDescriptor{card}})

	// Event-type cards never enter the draw pool.
	assert.Empty(t, world.Cards)
	require.Contains(t, world.EventCards, "card2")
	ec := world.EventCards["card2"]
	assert.Equal(t, "card2", ec.ID)
	assert.Equal(t, "card3", ec.Actions.Right.NextEventCardID)
	assert.Equal(t, EventCardActionData{Modifier: Modifier{}}, ec.Actions.Left)
}

func TestExport_EventWithInitialCard(t *testing.T) {
	event := content.EventDescriptor{
		ID:     "event1",
		Weight: 0.2,
		Conditions: []content.CardCondition{
			{Weight: 1, Values: map[string]content.Range{content.ParamPeople: {0, 20}}},
		},
		InitialCardID: "card2",
	}

	world := Export(Input{Events: []content.EventDescriptor{event}})

	require.Len(t, world.Events, 1)
	we := world.Events[0]
	assert.Equal(t, 0.2, we.Probability)
	assert.Equal(t, "card2", we.InitialEventCardID)
	require.Len(t, we.ShouldTriggerWhen, 1)
	assert.Equal(t, content.Range{0, 20}, we.ShouldTriggerWhen[0].State[content.ParamPeople])
}

func TestExport_EventWithoutInitialCardSkipped(t *testing.T) {
	world := Export(Input{Events: []content.EventDescriptor{
		{ID: "event1", Weight: 1},
	}})
	assert.Empty(t, world.Events)
}

func TestExport_ConditionlessEventTriggersUnderDefaultQuery(t *testing.T) {
	world := Export(Input{Events: []content.EventDescriptor{
		{ID: "event1", Weight: 1, InitialCardID: "card2"},
	}})

	require.Len(t, world.Events, 1)
	require.Len(t, world.Events[0].ShouldTriggerWhen, 1)
	assert.Equal(t, fullRangeState(), world.Events[0].ShouldTriggerWhen[0].State)
}

func TestExport_EmptyInputYieldsEmptyCollections(t *testing.T) {
	world := Export(Input{})

	assert.NotNil(t, world.Cards)
	assert.NotNil(t, world.Events)
	assert.NotNil(t, world.EventCards)
	assert.Empty(t, world.Cards)
	assert.Empty(t, world.Events)
	assert.Empty(t, world.EventCards)
}

func TestExport_QueryAlwaysCarriesFlagsObject(t *testing.T) {
	world := Export(Input{
		Cards: []content.CardDescriptor{{
			ID: "card1", Type: content.CardAction,
			Conditions: []content.CardCondition{{Weight: 1}},
		}},
		Events: []content.EventDescriptor{
			{ID: "event1", Weight: 1, InitialCardID: "card2"},
		},
	})

	data, err := json.Marshal(world)
	require.NoError(t, err)
	// Wire parity: every query serializes a flags object, empty or not.
	assert.Contains(t, string(data), `"flags":{}`)
	assert.NotNil(t, world.Cards[0].IsAvailableWhen[0].Flags)
	assert.NotNil(t, world.Events[0].ShouldTriggerWhen[0].Flags)
}

func TestExport_DoesNotMutateInput(t *testing.T) {
	cond := content.CardCondition{Weight: 1, Values: map[string]content.Range{content.ParamMoney: {5, 50}}}
	card := content.CardDescriptor{ID: "card1", Type: content.CardAction,
		Conditions: []content.CardCondition{cond}}

	_ = Export(Input{Cards: []content.CardDescriptor{card}})

	assert.Equal(t, map[string]content.Range{content.ParamMoney: {5, 50}}, card.Conditions[0].Values)
	assert.Len(t, card.Conditions[0].Values, 1)
}
