package content

// Standard parameter ids the runtime always evaluates. Conditions default
// these four to the full [0,100] range on export.
const (
	ParamEnvironment = "environment"
	ParamPeople      = "people"
	ParamSecurity    = "security"
	ParamMoney       = "money"
)

// StandardValueParameters lists the runtime's four numeric parameters in
// export order.
var StandardValueParameters = []string{
	ParamEnvironment,
	ParamPeople,
	ParamSecurity,
	ParamMoney,
}

// DefaultParameterRange is the unconstrained range applied to standard
// parameters a condition does not mention.
var DefaultParameterRange = Range{0, 100}

// DefaultParameters returns the built-in parameter set: the four standard
// numeric parameters (system, undeletable) plus the introduction flag.
func DefaultParameters() []ParameterDescriptor {
	params := []ParameterDescriptor{
		{ID: ParamEnvironment, Name: "Environment", Type: ParameterValue, SystemParameter: true},
		{ID: ParamPeople, Name: "People", Type: ParameterValue, SystemParameter: true},
		{ID: ParamSecurity, Name: "Security", Type: ParameterValue, SystemParameter: true},
		{ID: ParamMoney, Name: "Money", Type: ParameterValue, SystemParameter: true},
		{ID: "introduction-complete", Name: "Introduction Complete", Type: ParameterFlag},
	}
	return params
}

// Action slot ids matched case-insensitively during export.
const (
	ActionLeft  = "left"
	ActionRight = "right"
)

// DefaultActions returns the built-in action slots.
func DefaultActions() []ActionDescriptor {
	return []ActionDescriptor{
		{ID: ActionLeft, Name: "Left"},
		{ID: ActionRight, Name: "Right"},
	}
}
