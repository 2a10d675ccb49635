package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, RoleBuyer.Valid())
	require.True(t, RoleSeller.Valid())
	require.False(t, Role("admin").Valid())
	require.False(t, Role("").Valid())
}

func TestUserJSONHidesPassword(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Email: "a@b.com", Password: "hash"})
	require.NoError(t, err)
	require.NotContains(t, string(b), "hash")
	require.NotContains(t, string(b), "password")
}
