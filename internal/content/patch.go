package content

// Patches express partial updates: nil fields leave the current value
// untouched, set fields replace it. Array-valued fields (conditions, actions,
// tags) are opaque wholesale replacements, never merged element-wise.

// CardPatch is a partial CardDescriptor update.
type CardPatch struct {
	Name       *string
	ImageID    *string
	Type       *CardType
	Location   *string
	Text       *string
	Weight     *float64
	Conditions []CardCondition
	Actions    []ActionData
}

// Apply merges the patch onto a card, returning a fresh record.
// An all-nil patch returns the card unchanged.
func (p CardPatch) Apply(c CardDescriptor) CardDescriptor {
	c = c.Clone()
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ImageID != nil {
		c.ImageID = *p.ImageID
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.Conditions != nil {
		c.Conditions = CloneConditions(p.Conditions)
	}
	if p.Actions != nil {
		c.Actions = CloneActions(p.Actions)
	}
	return c
}

// EventPatch is a partial EventDescriptor update.
type EventPatch struct {
	Name          *string
	Weight        *float64
	Conditions    []CardCondition
	InitialCardID *string
}

// Apply merges the patch onto an event, returning a fresh record.
func (p EventPatch) Apply(e EventDescriptor) EventDescriptor {
	e = e.Clone()
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Weight != nil {
		e.Weight = *p.Weight
	}
	if p.Conditions != nil {
		e.Conditions = CloneConditions(p.Conditions)
	}
	if p.InitialCardID != nil {
		e.InitialCardID = *p.InitialCardID
	}
	return e
}

// ImagePatch is a partial ImageDescriptor update.
type ImagePatch struct {
	Name *string
	Src  *string
	Tags []string
}

// Apply merges the patch onto an image, returning a fresh record.
func (p ImagePatch) Apply(i ImageDescriptor) ImageDescriptor {
	i = i.Clone()
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Src != nil {
		i.Src = *p.Src
	}
	if p.Tags != nil {
		i.Tags = cloneSlice(p.Tags)
	}
	return i
}

// ParameterPatch is a partial ParameterDescriptor update.
// SystemParameter is not patchable; it is fixed at creation.
type ParameterPatch struct {
	Name *string
	Type *ParameterType
}

// Apply merges the patch onto a parameter, returning a fresh record.
func (p ParameterPatch) Apply(d ParameterDescriptor) ParameterDescriptor {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	return d
}

// ConditionPatch is a partial CardCondition update. Values and Flags replace
// the whole map when set.
type ConditionPatch struct {
	Weight *float64
	Values map[string]Range
	Flags  map[string]bool
}

// Apply merges the patch onto a condition, returning a fresh record.
func (p ConditionPatch) Apply(c CardCondition) CardCondition {
	c = c.Clone()
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.Values != nil {
		c.Values = cloneMap(p.Values)
	}
	if p.Flags != nil {
		c.Flags = cloneMap(p.Flags)
	}
	return c
}
