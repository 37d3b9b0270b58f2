// Package rbac содержит статическую таблицу соответствия ролей и разрешений.
// Таблица загружается один раз при старте и не меняется во время работы.
package rbac

// Роли образуют закрытое множество. Новая учётная запись получает RoleViewer.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleEditor    = "editor"
	RoleViewer    = "viewer"
)

// permissions — соответствие роли и набора разрешений.
var permissions = map[string][]string{
	RoleAdmin:     {"create", "read", "update", "delete", "manage_users", "view_analytics"},
	RoleModerator: {"create", "read", "update", "delete", "manage_comments"},
	RoleEditor:    {"create", "read", "update"},
	RoleViewer:    {"read"},
}

// IsValidRole сообщает, входит ли роль в закрытое множество ролей.
func IsValidRole(role string) bool {
	_, ok := permissions[role]
	return ok
}

// HasPermission сообщает, содержит ли роль указанное разрешение.
// Неизвестная роль не имеет разрешений.
func HasPermission(role, permission string) bool {
	for _, p := range permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// Permissions возвращает копию списка разрешений роли.
func Permissions(role string) []string {
	perms := permissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
