package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, "librarian", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAuth(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "librarian", claims["role"])
}

func TestParseAuth_BearerPrefix(t *testing.T) {
	tok, err := Issue("secret", 7, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "admin", claims["role"])
}

func TestParseAuth_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 7, "admin", time.Hour)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_Expired(t *testing.T) {
	tok, err := Issue("secret", 7, "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "secret")
	require.Error(t, err)
}

func TestParseAuth_Empty(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)
	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
