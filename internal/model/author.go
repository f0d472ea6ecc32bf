package model

import "time"

type Author struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Bio         string    `json:"bio,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	BirthYear   *int      `json:"birthYear,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
