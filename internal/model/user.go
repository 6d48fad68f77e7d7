package model

import "strings"

// Role is a team member's function within the firm. Values are the wire
// strings used by the backend.
type Role string

const (
	RoleDirector  Role = "chefe"
	RoleManager   Role = "gestor"
	RoleSales     Role = "comercial"
	RoleMarketing Role = "marketing"
	RoleLawyer    Role = "advogado"
	RoleIntern    Role = "estagiario"
)

// RoleInfo holds display metadata for a role.
type RoleInfo struct {
	Label string
	Color string
}

var roleInfo = map[Role]RoleInfo{
	RoleDirector:  {Label: "Diretor Geral", Color: "#8B5CF6"},
	RoleManager:   {Label: "Gestor", Color: "#3B82F6"},
	RoleSales:     {Label: "Comercial", Color: "#10B981"},
	RoleMarketing: {Label: "Marketing", Color: "#F59E0B"},
	RoleLawyer:    {Label: "Advogado", Color: "#6366F1"},
	RoleIntern:    {Label: "Estagiário", Color: "#EC4899"},
}

// Info returns the display metadata for the role. Unknown roles get the
// intern styling; the raw value itself is never rewritten.
func (r Role) Info() RoleInfo {
	if info, ok := roleInfo[r]; ok {
		return info
	}
	return roleInfo[RoleIntern]
}

// Known reports whether the role is one of the fixed enumeration values.
func (r Role) Known() bool {
	_, ok := roleInfo[r]
	return ok
}

// User is an authenticated identity or a roster entry. Assignee references
// on events carry the same shape.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// AvatarLabel returns the short avatar text, falling back to the first two
// characters of the name.
func (u User) AvatarLabel() string {
	if u.Avatar != "" {
		return u.Avatar
	}
	name := []rune(strings.TrimSpace(u.Name))
	if len(name) > 2 {
		name = name[:2]
	}
	return strings.ToUpper(string(name))
}

// CanEdit reports whether the user may change event status or delete events.
func (u User) CanEdit() bool {
	switch u.Role {
	case RoleDirector, RoleManager, RoleLawyer:
		return true
	}
	return false
}

// CanCreate reports whether the user may create events.
func (u User) CanCreate() bool {
	return u.CanEdit() || u.Role == RoleSales
}

// CanViewAll reports whether the user sees the whole firm's agenda.
func (u User) CanViewAll() bool {
	return u.Role == RoleDirector || u.Role == RoleManager
}
