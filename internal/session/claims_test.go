package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/installmart/internal/common"
)

func sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func TestInspect(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token := sign(t, Claims{
		UserID: "64f0c2",
		Name:   "Ayesha",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := Inspect("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2", claims.User())
	assert.Equal(t, "Ayesha", claims.Name)
	assert.True(t, claims.Expiry().Equal(exp))
	assert.False(t, claims.Expired(exp.Add(-time.Minute)))
	assert.True(t, claims.Expired(exp))
}

func TestInspectUserFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{name: "userId", claims: jwt.MapClaims{"userId": "a", "id": "b"}, want: "a"},
		{name: "id", claims: jwt.MapClaims{"id": "b", "_id": "c"}, want: "b"},
		{name: "mongo id", claims: jwt.MapClaims{"_id": "c", "sub": "d"}, want: "c"},
		{name: "subject", claims: jwt.MapClaims{"sub": "d"}, want: "d"},
		{name: "none", claims: jwt.MapClaims{"role": "user"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Inspect(sign(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.User())
		})
	}
}

func TestInspectWithoutExpiry(t *testing.T) {
	claims, err := Inspect(sign(t, jwt.MapClaims{"id": "u1"}))
	require.NoError(t, err)
	assert.True(t, claims.Expiry().IsZero())
	assert.False(t, claims.Expired(time.Now()))
}

func TestInspectRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := Inspect(token)
		assert.ErrorIs(t, err, common.ErrInvalidPayload, "token %q", token)
	}
}
