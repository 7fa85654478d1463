package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author owns zero or more books. Deleting an author cascades to their
// books via the foreign key on books.author_id.
type Author struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"index;size:256;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Nationality *string   `gorm:"size:100" json:"nationality"`
	BirthYear   *int      `json:"birthYear"`
	Books       []Book    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"books,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Book struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"index;size:512;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description"`
	ISBN          *string   `gorm:"uniqueIndex;size:20" json:"isbn"`
	PublishedYear *int      `gorm:"index" json:"publishedYear"`
	Genre         *string   `gorm:"index;size:100" json:"genre"`
	Pages         *int      `json:"pages"`
	AuthorID      string    `gorm:"index;size:36;not null" json:"authorId"`
	Author        *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
