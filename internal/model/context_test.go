package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeContext() Context {
	return Context{
		Name:   "Bob",
		Age:    "30",
		Gender: GenderMale,
		Height: "180",
		Weight: "75",
	}
}

func TestIsProfileComplete(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Context)
		complete bool
	}{
		{name: "all fields set", mutate: func(c *Context) {}, complete: true},
		{name: "missing name", mutate: func(c *Context) { c.Name = "" }},
		{name: "missing age", mutate: func(c *Context) { c.Age = "" }},
		{name: "missing gender", mutate: func(c *Context) { c.Gender = "" }},
		{name: "missing height", mutate: func(c *Context) { c.Height = "" }},
		{name: "missing weight", mutate: func(c *Context) { c.Weight = "" }},
		{
			name: "dialog history does not affect completeness",
			mutate: func(c *Context) {
				c.DialogHistory = []DialogTurn{{Role: DialogRoleUser, Text: "hi"}}
			},
			complete: true,
		},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				c := completeContext()
				tt.mutate(&c)
				assert.Equal(t, tt.complete, c.IsProfileComplete())
			},
		)
	}

	assert.False(t, Context{}.IsProfileComplete())
}

func TestDeriveOnboardingState(t *testing.T) {
	c := Context{}
	assert.Equal(t, StateAwaitingName, DeriveOnboardingState(c))

	c.Name = "Bob"
	assert.Equal(t, StateAwaitingAge, DeriveOnboardingState(c))

	c.Age = "30"
	assert.Equal(t, StateAwaitingGender, DeriveOnboardingState(c))

	c.Gender = GenderMale
	assert.Equal(t, StateAwaitingHeight, DeriveOnboardingState(c))

	c.Height = "180"
	assert.Equal(t, StateAwaitingWeight, DeriveOnboardingState(c))

	c.Weight = "75"
	assert.Equal(t, StateComplete, DeriveOnboardingState(c))
}

func TestDeriveOnboardingStateIsIdempotent(t *testing.T) {
	c := Context{Name: "Bob", Age: "30"}
	first := DeriveOnboardingState(c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveOnboardingState(c))
	}
}

func TestDeriveOnboardingStateOrderSkipsSetFields(t *testing.T) {
	// A gap earlier in the order wins even when later fields are set.
	c := Context{Name: "Bob", Height: "180", Weight: "75"}
	assert.Equal(t, StateAwaitingAge, DeriveOnboardingState(c))
}

func TestSetField(t *testing.T) {
	var c Context
	require.NoError(t, c.SetField(ProfileFieldName, "Bob"))
	require.NoError(t, c.SetField(ProfileFieldAge, "30"))
	require.NoError(t, c.SetField(ProfileFieldGender, GenderFemale))
	require.NoError(t, c.SetField(ProfileFieldHeight, "170"))
	require.NoError(t, c.SetField(ProfileFieldWeight, "60"))

	assert.Equal(t, "Bob", c.Name)
	assert.Equal(t, "30", c.Age)
	assert.Equal(t, GenderFemale, c.Gender)
	assert.Equal(t, "170", c.Height)
	assert.Equal(t, "60", c.Weight)

	assert.ErrorIs(t, c.SetField(ProfileField("shoe_size"), "42"), ErrUnknownProfileField)
}
