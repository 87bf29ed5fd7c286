package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(secret, time.Hour)

	token, err := svc.Issue("ana", []string{"designer"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, []string{"designer"}, claims.Roles)

	_, err = svc.Issue("", nil)
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	svc := NewService(secret, time.Hour)
	token, err := svc.Issue("ana", nil)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewService("another-secret-value-000", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewService(secret, time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ana"})
		signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))
	assert.Empty(t, Subject(ctx))

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "ana"}}
	ctx = WithClaims(ctx, claims)
	assert.Same(t, claims, FromContext(ctx))
	assert.Equal(t, "ana", Subject(ctx))
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		roles      []string
		permission Permission
		want       bool
	}{
		{[]string{"admin"}, NotebooksManage, true},
		{[]string{"designer"}, NotebooksEdit, true},
		{[]string{"designer"}, NotebooksManage, false},
		{[]string{"viewer"}, NotebooksEdit, false},
		{[]string{"viewer", "designer"}, NotebooksEdit, true},
		{[]string{"ghost"}, NotebooksRead, false},
		{nil, NotebooksRead, false},
	}
	for _, tt := range tests {
		claims := &Claims{Roles: tt.roles}
		assert.Equal(t, tt.want, claims.Allowed(tt.permission), "%v %s", tt.roles, tt.permission)
	}

	var anonymous *Claims
	assert.False(t, anonymous.Allowed(NotebooksRead))
}
