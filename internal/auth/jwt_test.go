package auth_test

import (
	"testing"
	"time"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	manager := auth.NewManager("test-secret", 30*time.Minute)

	user := &domain.User{ID: "u1", Email: "user@example.com", Role: domain.RoleApprentice}
	token, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, domain.RoleApprentice, claims.Role)
	assert.Equal(t, "u1", claims.Subject)
}

func TestManager_Parse_Expired(t *testing.T) {
	manager := auth.NewManager("test-secret", -time.Minute)

	token, err := manager.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestManager_Parse_WrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-one", 30*time.Minute)
	verifier := auth.NewManager("secret-two", 30*time.Minute)

	token, err := issuer.Issue(&domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestManager_Parse_Garbage(t *testing.T) {
	manager := auth.NewManager("test-secret", 30*time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	hash, err := hasher.Hash("strongpass")
	require.NoError(t, err)
	assert.NotEqual(t, "strongpass", hash)

	assert.True(t, hasher.Verify(hash, "strongpass"))
	assert.False(t, hasher.Verify(hash, "wrongpass"))
	assert.False(t, hasher.Verify("not-a-hash", "strongpass"))
}
