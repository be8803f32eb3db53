package validate

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Text string `json:"text" validate:"notblank,max=5"`
	Role string `json:"role" validate:"required,oneof=student teacher"`
}

func TestStructAndFields(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(sample{Text: "hi", Role: "student"}))

	err := v.Struct(sample{Text: "   ", Role: ""})
	require.Error(t, err)

	fields := v.Fields(err)
	assert.Equal(t, "text must not be blank", fields["text"])
	assert.Equal(t, "role is required", fields["role"])
}

func TestFieldsMaxAndOneOf(t *testing.T) {
	v := New()
	err := v.Struct(sample{Text: "toolong", Role: "admin"})
	require.Error(t, err)

	fields := v.Fields(err)
	assert.Contains(t, fields, "text")
	assert.Contains(t, fields, "role")
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	v := New()
	assert.Nil(t, v.Fields(errors.New("boom")))
	assert.Nil(t, v.Fields(nil))
}
