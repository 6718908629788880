package models

import "time"

// Goal is a numeric target with a deadline, owned by exactly one user.
type Goal struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"userId" gorm:"type:varchar(36);index"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null"`
	TargetNumber int       `json:"targetNumber" gorm:"not null"`
	Deadline     string    `json:"deadline" gorm:"type:varchar(10);not null"`
	Progress     int       `json:"progress" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
