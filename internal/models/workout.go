package models

import "time"

// DateLayout is the calendar date format used for workout dates and goal deadlines.
const DateLayout = "2006-01-02"

// Workout is a single training session owned by exactly one user.
type Workout struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index"`
	Type      string    `json:"type" gorm:"type:varchar(100);not null"`
	Date      string    `json:"date" gorm:"type:varchar(10);not null"`
	Duration  int       `json:"duration" gorm:"not null"` // minutes
	Notes     *string   `json:"notes,omitempty" gorm:"type:text"`
	ShotsMade *int      `json:"shotsMade,omitempty"`
	Reps      *int      `json:"reps,omitempty"`
	Sets      *int      `json:"sets,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Owner is only populated by coach-wide listings.
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
