package api

import (
	"testing"
	"time"

	"github.com/campusops/lostfound/internal/types"
	"github.com/stretchr/testify/assert"
)

func Test_defaultPassword(t *testing.T) {
	tcases := []struct {
		name      string
		firstName string
		email     string
		expected  string
	}{
		{
			name:      "lower-cases first name",
			firstName: "Ada",
			email:     "ada@x.com",
			expected:  "ada_ada_default",
		},
		{
			name:      "uses local part of email",
			firstName: "Grace",
			email:     "g.hopper@navy.mil",
			expected:  "grace_g.hopper_default",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, defaultPassword(tc.firstName, tc.email))
		})
	}
}

func Test_passwordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("ada_ada_default")
	assert.NoError(t, err)
	assert.NotEqual(t, "ada_ada_default", hash)

	assert.True(t, passwordMatches(hash, "ada_ada_default"))
	assert.False(t, passwordMatches(hash, "ada_ada_defaul"))
	assert.False(t, passwordMatches(hash, ""))
}

func Test_jwtRoundTrip(t *testing.T) {
	app := &LostFoundApp{signingKey: []byte("test-signing-key")}

	token, err := app.createJwtForSession(types.User{Id: "s12345"}, time.Hour)
	assert.NoError(t, err)

	userId, err := app.extractUserIdFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "s12345", userId)
}

func Test_jwtWrongKey(t *testing.T) {
	app := &LostFoundApp{signingKey: []byte("test-signing-key")}

	token, err := app.createJwtForSession(types.User{Id: "s12345"}, time.Hour)
	assert.NoError(t, err)

	other := &LostFoundApp{signingKey: []byte("different-key")}
	_, err = other.extractUserIdFromToken(token)
	assert.Error(t, err)
}

func Test_jwtExpired(t *testing.T) {
	app := &LostFoundApp{signingKey: []byte("test-signing-key")}

	token, err := app.createJwtForSession(types.User{Id: "s12345"}, -time.Minute)
	assert.NoError(t, err)

	_, err = app.extractUserIdFromToken(token)
	assert.Error(t, err)
}
