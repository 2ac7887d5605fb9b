package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireGrantTabInvalidID(t *testing.T) {
	db := newTestDB()
	all := NewPermissionSet(GrantPermissions...)
	for _, id := range []string{"", "abc", "0", "-1", "1.5", " 1"} {
		err := db.RequireGrantTab(id, all)
		assert.ErrorIs(t, err, ErrForbidden, "id %q", id)
	}
}

func TestRequireGrantTabUnknownNode(t *testing.T) {
	db := newTestDB()
	err := db.RequireGrantTab("99", NewPermissionSet(GrantPermissions...))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRequireGrantTabDisabledType(t *testing.T) {
	db := newTestDB()
	var sets = []PermissionSet{
		{},
		NewPermissionSet(GrantView),
		NewPermissionSet(GrantPermissions...),
	}
	for _, nodeID := range []string{"2", "3"} {
		for _, perms := range sets {
			err := db.RequireGrantTab(nodeID, perms)
			assert.ErrorIs(t, err, ErrForbidden, "node %s, permissions %s", nodeID, perms)
		}
	}
}

func TestRequireGrantTabMissingPermissions(t *testing.T) {
	db := newTestDB()
	assert.ErrorIs(t, db.RequireGrantTab("1", PermissionSet{}), ErrForbidden)
	assert.ErrorIs(t, db.RequireGrantTab("1", nil), ErrForbidden)
	assert.ErrorIs(t, db.RequireGrantTab("1", NewPermissionSet("administer nodes")), ErrForbidden)
}

func TestRequireGrantTabSinglePermission(t *testing.T) {
	db := newTestDB()
	for _, perm := range GrantPermissions {
		assert.NoError(t, db.RequireGrantTab("1", NewPermissionSet(perm)), "permission %s", perm)
	}
}

func TestRequireGrantTabStoreError(t *testing.T) {
	db := newTestDB()
	db.NodeDB.(*fakeNodeDB).err = errStoreDown

	err := db.RequireGrantTab("1", NewPermissionSet(GrantPermissions...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestRequirePermission(t *testing.T) {
	perms := NewPermissionSet(GrantView)
	assert.NoError(t, RequirePermission(perms, GrantView))
	assert.ErrorIs(t, RequirePermission(perms, GrantDelete), ErrForbidden)
}
