package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// nothing stored yet
	auth, err := LoadAuth(dir)
	require.NoError(t, err)
	assert.Nil(t, auth)

	stored := &ClientAuth{
		UserId:   "u1",
		Token:    "tok",
		Email:    "maria@example.com",
		UserName: "Maria",
	}
	require.NoError(t, StoreAuth(dir, stored))

	auth, err = LoadAuth(dir)
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, stored, auth)

	require.NoError(t, ClearAuth(dir))

	auth, err = LoadAuth(dir)
	require.NoError(t, err)
	assert.Nil(t, auth)

	// clearing twice is fine
	require.NoError(t, ClearAuth(dir))
}
