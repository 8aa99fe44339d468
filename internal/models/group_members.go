package models

type GroupMember struct {
	GroupID GroupID `json:"group_id,omitempty" db:"group_id,omitempty"`
	UserID  UserID  `json:"user_id,omitempty" db:"user_id,omitempty"`
	Role    string  `json:"role,omitempty" db:"role,omitempty"`
}
