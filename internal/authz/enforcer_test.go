package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer("")
	require.NoError(t, err)
	return e
}

func TestEmbeddedPolicy_UserPermissions(t *testing.T) {
	e := newTestEnforcer(t)

	assert.True(t, e.Can("user", ObjReviews, ActCreate))
	assert.True(t, e.Can("user", ObjComments, ActCreate))
	assert.True(t, e.Can("user", ObjProfile, ActUpdate))

	assert.False(t, e.Can("user", ObjReviews, ActModerate))
	assert.False(t, e.Can("user", ObjTitles, ActWrite))
	assert.False(t, e.Can("user", ObjUsers, ActManage))
}

func TestEmbeddedPolicy_ModeratorInheritsUser(t *testing.T) {
	e := newTestEnforcer(t)

	assert.True(t, e.Can("moderator", ObjReviews, ActCreate))
	assert.True(t, e.Can("moderator", ObjReviews, ActModerate))
	assert.True(t, e.Can("moderator", ObjComments, ActModerate))

	assert.False(t, e.Can("moderator", ObjCategories, ActWrite))
	assert.False(t, e.Can("moderator", ObjUsers, ActManage))
}

func TestEmbeddedPolicy_AdminInheritsAll(t *testing.T) {
	e := newTestEnforcer(t)

	for _, perm := range [][2]string{
		{ObjReviews, ActCreate},
		{ObjComments, ActModerate},
		{ObjTitles, ActWrite},
		{ObjCategories, ActWrite},
		{ObjGenres, ActWrite},
		{ObjUsers, ActManage},
		{ObjProfile, ActRead},
	} {
		assert.True(t, e.Can("admin", perm[0], perm[1]), perm)
	}
}

func TestCan_UnknownRoleAndNilEnforcer(t *testing.T) {
	e := newTestEnforcer(t)
	assert.False(t, e.Can("", ObjReviews, ActCreate))
	assert.False(t, e.Can("guest", ObjReviews, ActCreate))

	var nilEnforcer *Enforcer
	assert.False(t, nilEnforcer.Can("admin", ObjUsers, ActManage))
}

func TestNewEnforcer_PolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	require.NoError(t, os.WriteFile(path, []byte("p, user, titles, write\n"), 0o600))

	e, err := NewEnforcer(path)
	require.NoError(t, err)

	assert.True(t, e.Can("user", ObjTitles, ActWrite))
	assert.False(t, e.Can("user", ObjReviews, ActCreate))
}

func TestNewEnforcer_MissingFileFallsBackToEmbedded(t *testing.T) {
	e, err := NewEnforcer(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.True(t, e.Can("user", ObjReviews, ActCreate))
}

func TestLoadPolicy_Malformed(t *testing.T) {
	e := newTestEnforcer(t)
	assert.Error(t, loadPolicy(e.enforcer, "p, user, reviews\n"))
	assert.Error(t, loadPolicy(e.enforcer, "x, a, b\n"))
}
