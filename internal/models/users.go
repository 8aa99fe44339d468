package models

type User struct {
	ID       UserID `json:"id,omitempty" db:"id,omitempty"`
	Name     string `json:"name,omitempty" db:"name,omitempty"`
	Email    string `json:"email,omitempty" db:"email,omitempty"`
	ImageURL string `json:"image_url,omitempty" db:"image_url,omitempty"`
}
