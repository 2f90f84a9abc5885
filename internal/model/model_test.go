package model

import (
	"testing"

	"github.com/deppfellow/wtwr-backend/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDs(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 24)
	assert.True(t, IsValidID(id))
	assert.NotEqual(t, id, NewID())

	assert.False(t, IsValidID("not-an-id"))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("507f1f77bcf86cd79943901z"))

	parsed, ok := ParseID("507F1F77BCF86CD799439011")
	assert.True(t, ok)
	assert.Equal(t, "507f1f77bcf86cd799439011", parsed)

	_, ok = ParseID("not-an-id")
	assert.False(t, ok)
}

func TestCreateItemPayloadValidate(t *testing.T) {
	valid := CreateItemPayload{Name: "Cap", Weather: WeatherHot, ImageURL: "https://example.com/cap.png"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		payload CreateItemPayload
		field   string
	}{
		{"missing name", CreateItemPayload{Weather: WeatherHot, ImageURL: "https://x.io/a.png"}, "name"},
		{"short name", CreateItemPayload{Name: "a", Weather: WeatherHot, ImageURL: "https://x.io/a.png"}, "name"},
		{"bad weather", CreateItemPayload{Name: "Cap", Weather: "mild", ImageURL: "https://x.io/a.png"}, "weather"},
		{"bad url", CreateItemPayload{Name: "Cap", Weather: WeatherCold, ImageURL: "nope"}, "imageUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestPayloadsRejectBlankNames(t *testing.T) {
	payloads := map[string]interface{ Validate() error }{
		"item": &CreateItemPayload{Name: "   ", Weather: WeatherHot, ImageURL: "https://x.io/a.png"},
		"user": &CreateUserPayload{Name: " \t ", Avatar: "http://x/a.png"},
	}

	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			var custom validation.CustomValidationErrors
			require.ErrorAs(t, p.Validate(), &custom)
			assert.Equal(t, "name", custom[0].Field)
		})
	}
}

func TestCreateUserPayloadValidate(t *testing.T) {
	assert.NoError(t, (&CreateUserPayload{Name: "Ada", Avatar: "http://x/a.png"}).Validate())
	assert.Error(t, (&CreateUserPayload{Name: "Ada"}).Validate())
	assert.Error(t, (&CreateUserPayload{Avatar: "http://x/a.png"}).Validate())
}

func TestIDPayloadsUseParamNames(t *testing.T) {
	err := (&ItemIDPayload{}).Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "itemId", verrs[0].Field())

	assert.NoError(t, (&UserIDPayload{UserID: "whatever"}).Validate())
}
