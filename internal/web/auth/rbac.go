package auth

// Permission is an action on notebooks held by a role
type Permission string

const (
	// NotebooksRead allows reading sessions, translations and exports
	NotebooksRead Permission = "notebooks.read"
	// NotebooksEdit allows applying operations and changing metadata
	NotebooksEdit Permission = "notebooks.edit"
	// NotebooksManage allows opening and closing sessions
	NotebooksManage Permission = "notebooks.manage"
)

// Role is a named set of permissions
type Role struct {
	Name        string
	Permissions []Permission
}

// HasPermission checks if the role has a specific permission
func (r *Role) HasPermission(permission Permission) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Predefined roles
var (
	// AdminRole has all permissions
	AdminRole = &Role{Name: "admin", Permissions: []Permission{NotebooksRead, NotebooksEdit, NotebooksManage}}

	// DesignerRole edits notebooks in open sessions
	DesignerRole = &Role{Name: "designer", Permissions: []Permission{NotebooksRead, NotebooksEdit}}

	// ViewerRole can only read
	ViewerRole = &Role{Name: "viewer", Permissions: []Permission{NotebooksRead}}
)

// GetRoleByName returns a predefined role by name
// Returns nil if the role is not found
func GetRoleByName(name string) *Role {
	switch name {
	case "admin":
		return AdminRole
	case "designer":
		return DesignerRole
	case "viewer":
		return ViewerRole
	default:
		return nil
	}
}

// Allowed reports whether any of the claimed roles grants permission
func (c *Claims) Allowed(permission Permission) bool {
	if c == nil {
		return false
	}
	for _, name := range c.Roles {
		if role := GetRoleByName(name); role != nil && role.HasPermission(permission) {
			return true
		}
	}
	return false
}
