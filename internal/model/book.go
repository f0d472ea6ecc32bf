package model

import "time"

// Book references its author by id only. There is no foreign key: deleting an
// author leaves its books in place.
type Book struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	AuthorID        string    `json:"authorId" gorm:"not null;index"`
	ISBN            string    `json:"isbn,omitempty" gorm:"size:20;index"`
	PublicationYear int       `json:"publicationYear" gorm:"not null"`
	Genre           string    `json:"genre,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
