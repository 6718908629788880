package models

import "time"

// Role governs default visibility and mutation rights of a user.
type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAthlete || r == RoleCoach
}

// User represents an athlete or a coach.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(30);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Role      Role      `json:"role" gorm:"type:varchar(16);not null"`
	Height    *int      `json:"height,omitempty"`
	Position  *string   `json:"position,omitempty" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
