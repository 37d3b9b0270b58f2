package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleModerator))
	assert.True(t, IsValidRole(RoleEditor))
	assert.True(t, IsValidRole(RoleViewer))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		permission string
		want       bool
	}{
		{
			name:       "admin manages users",
			role:       RoleAdmin,
			permission: "manage_users",
			want:       true,
		},
		{
			name:       "moderator cannot manage users",
			role:       RoleModerator,
			permission: "manage_users",
			want:       false,
		},
		{
			name:       "editor can update",
			role:       RoleEditor,
			permission: "update",
			want:       true,
		},
		{
			name:       "viewer read only",
			role:       RoleViewer,
			permission: "read",
			want:       true,
		},
		{
			name:       "viewer cannot create",
			role:       RoleViewer,
			permission: "create",
			want:       false,
		},
		{
			name:       "unknown role has nothing",
			role:       "ghost",
			permission: "read",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	perms := Permissions(RoleViewer)
	assert.Equal(t, []string{"read"}, perms)

	perms[0] = "delete"
	assert.True(t, HasPermission(RoleViewer, "read"))
	assert.False(t, HasPermission(RoleViewer, "delete"))
}
