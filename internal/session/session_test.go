package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrIdentityMissing)

	_, err = FromContext(WithSession(context.Background(), Session{DisplayName: "no owner"}))
	assert.ErrorIs(t, err, ErrIdentityMissing)

	ctx := WithSession(context.Background(), Session{OwnerID: "U1", DisplayName: "Asha"})
	s, err := ContextProvider{}.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U1", s.OwnerID)
}

func TestStatic(t *testing.T) {
	_, err := Static{}.Current(context.Background())
	assert.ErrorIs(t, err, ErrIdentityMissing)

	s, err := Static{OwnerID: "U9", Email: "rep@example.com"}.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rep@example.com", s.Email)
}
