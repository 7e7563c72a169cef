package models

import (
	"time"

	"github.com/google/uuid"
)

// Post представляет пост-задание внутри группы
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	GroupID   uuid.UUID `json:"group_id" gorm:"type:text;not null;index"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:text;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content"`
	Deadline  *Date     `json:"deadline" gorm:"type:date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	Group    Group      `json:"-" gorm:"foreignKey:GroupID"`
	Author   User       `json:"-" gorm:"foreignKey:AuthorID"`
	Files    []PostFile `json:"files" gorm:"foreignKey:PostID"`
	Comments []Comment  `json:"comments" gorm:"foreignKey:PostID"`
}

// PostFile представляет файл, прикрепленный к посту
type PostFile struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	PostID       uuid.UUID `json:"post_id" gorm:"type:text;not null;index"`
	File         string    `json:"file" gorm:"not null"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Comment представляет комментарий к посту.
// Parent задает дерево ответов; удаление родителя удаляет ответы.
type Comment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	PostID    uuid.UUID  `json:"post_id" gorm:"type:text;not null;index"`
	AuthorID  uuid.UUID  `json:"author_id" gorm:"type:text;not null"`
	Text      string     `json:"text" gorm:"not null"`
	ParentID  *uuid.UUID `json:"parent" gorm:"type:text;index"`
	CreatedAt time.Time  `json:"created_at"`

	// Связи
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}
