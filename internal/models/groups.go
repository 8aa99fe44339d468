package models

type Group struct {
	ID          GroupID       `json:"id,omitempty" db:"id,omitempty"`
	Name        string        `json:"name,omitempty" db:"name,omitempty"`
	Description string        `json:"description,omitempty" db:"description,omitempty"`
	CreatedBy   UserID        `json:"created_by,omitempty" db:"created_by,omitempty"`
	Members     []GroupMember `json:"members,omitempty"`
}

// HasMember reports whether the user is listed in the group's membership.
func (g Group) HasMember(id UserID) bool {
	for _, m := range g.Members {
		if m.UserID == id {
			return true
		}
	}
	return false
}
