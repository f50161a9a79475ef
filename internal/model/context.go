package model

import "errors"

var ErrUnknownProfileField = errors.New("unknown profile field")

// ContextSchemaVersion is written into every persisted context blob so a
// future migration can tell old blobs apart.
const ContextSchemaVersion = 1

type DialogRole string

const (
	DialogRoleUser      = DialogRole("user")
	DialogRoleAssistant = DialogRole("assistant")
)

type DialogTurn struct {
	Role DialogRole `json:"role"`
	Text string     `json:"text"`
}

const (
	GenderMale   = "Мужской"
	GenderFemale = "Женский"
)

type ProfileField string

const (
	ProfileFieldName   = ProfileField("name")
	ProfileFieldAge    = ProfileField("age")
	ProfileFieldGender = ProfileField("gender")
	ProfileFieldHeight = ProfileField("height")
	ProfileFieldWeight = ProfileField("weight")
)

// Context is the per-user blob persisted alongside the user record. All
// profile fields are optional until collected by onboarding.
type Context struct {
	SchemaVersion int          `json:"v,omitempty"`
	Name          string       `json:"name,omitempty"`
	Age           string       `json:"age,omitempty"`
	Gender        string       `json:"gender,omitempty"`
	Height        string       `json:"height,omitempty"`
	Weight        string       `json:"weight,omitempty"`
	DialogHistory []DialogTurn `json:"dialogHistory,omitempty"`
}

func (c *Context) SetField(field ProfileField, value string) error {
	switch field {
	case ProfileFieldName:
		c.Name = value
	case ProfileFieldAge:
		c.Age = value
	case ProfileFieldGender:
		c.Gender = value
	case ProfileFieldHeight:
		c.Height = value
	case ProfileFieldWeight:
		c.Weight = value
	default:
		return ErrUnknownProfileField
	}
	return nil
}

// IsProfileComplete reports whether all five profile fields are set.
func (c Context) IsProfileComplete() bool {
	return c.Name != "" && c.Age != "" && c.Gender != "" && c.Height != "" && c.Weight != ""
}

type OnboardingState int

const (
	StateAwaitingName = OnboardingState(iota)
	StateAwaitingAge
	StateAwaitingGender
	StateAwaitingHeight
	StateAwaitingWeight
	StateComplete
)

func (s OnboardingState) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingAge:
		return "awaiting_age"
	case StateAwaitingGender:
		return "awaiting_gender"
	case StateAwaitingHeight:
		return "awaiting_height"
	case StateAwaitingWeight:
		return "awaiting_weight"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// DeriveOnboardingState computes the onboarding phase from field presence.
// There is no stored state: replaying the same context always yields the
// same phase, which keeps onboarding restart-safe.
func DeriveOnboardingState(c Context) OnboardingState {
	switch {
	case c.Name == "":
		return StateAwaitingName
	case c.Age == "":
		return StateAwaitingAge
	case c.Gender == "":
		return StateAwaitingGender
	case c.Height == "":
		return StateAwaitingHeight
	case c.Weight == "":
		return StateAwaitingWeight
	}
	return StateComplete
}
