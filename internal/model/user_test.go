package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserJSONNeverContainsPasswordHash(t *testing.T) {
	user := User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$supersecret",
		Links: []Link{
			{ID: uuid.New(), Title: "Site", URL: "https://a.com"},
		},
	}

	payload, err := json.Marshal(user)
	assert.NoError(t, err)

	body := strings.ToLower(string(payload))
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "supersecret")
}

func TestUserRoundTripKeepsWireFieldNames(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Name:           "Alice",
		ProfilePicture: "https://cdn.example.com/a.png",
		AboutMe:        "hi",
	}

	payload, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"profilePicture"`)
	assert.Contains(t, string(payload), `"aboutMe"`)
	assert.Contains(t, string(payload), `"links"`)
}
