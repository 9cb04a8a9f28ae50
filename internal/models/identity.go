package models

// Roles carried in identity tokens.
const (
	RoleEntrant   = "entrant"
	RoleOrganizer = "organizer"
)

// Identity is the caller on whose behalf an operation runs.
type Identity struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsOrganizer reports whether the caller may manage events and trigger draws.
func (i Identity) IsOrganizer() bool {
	return i.Role == RoleOrganizer
}
