package content

// ContentBundle is a complete content set: the unit of file export/import
// and of bulk store replacement. All collections are optional on import; a
// missing collection leaves the corresponding store empty.
type ContentBundle struct {
	Images     []ImageDescriptor     `json:"images"`
	Parameters []ParameterDescriptor `json:"parameters"`
	Cards      []CardDescriptor      `json:"cards"`
	Events     []EventDescriptor     `json:"events"`
	Settings   *Settings             `json:"settings,omitempty"`
}

// Normalize replaces nil collections, including the nested maps and slices
// of each entity, with empty ones so the bundle serializes with arrays and
// objects, never nulls. The persisted format always carries these containers.
func (b ContentBundle) Normalize() ContentBundle {
	if b.Images == nil {
		b.Images = []ImageDescriptor{}
	}
	for i := range b.Images {
		if b.Images[i].Tags == nil {
			b.Images[i].Tags = []string{}
		}
	}
	if b.Parameters == nil {
		b.Parameters = []ParameterDescriptor{}
	}
	if b.Cards == nil {
		b.Cards = []CardDescriptor{}
	}
	for i := range b.Cards {
		b.Cards[i].Conditions = normalizeConditions(b.Cards[i].Conditions)
		b.Cards[i].Actions = normalizeActions(b.Cards[i].Actions)
	}
	if b.Events == nil {
		b.Events = []EventDescriptor{}
	}
	for i := range b.Events {
		b.Events[i].Conditions = normalizeConditions(b.Events[i].Conditions)
	}
	return b
}

func normalizeConditions(conds []CardCondition) []CardCondition {
	if conds == nil {
		return []CardCondition{}
	}
	for i := range conds {
		if conds[i].Values == nil {
			conds[i].Values = map[string]Range{}
		}
		if conds[i].Flags == nil {
			conds[i].Flags = map[string]bool{}
		}
	}
	return conds
}

func normalizeActions(actions []ActionData) []ActionData {
	if actions == nil {
		return []ActionData{}
	}
	for i := range actions {
		if actions[i].Values == nil {
			actions[i].Values = map[string]float64{}
		}
		if actions[i].Flags == nil {
			actions[i].Flags = map[string]bool{}
		}
	}
	return actions
}
