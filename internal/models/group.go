package models

import (
	"time"

	"github.com/google/uuid"
)

// Group представляет учебную группу.
// У группы ровно один админ; при создании он же добавляется в преподаватели.
type Group struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Info      string    `json:"info"`
	AdminID   uuid.UUID `json:"admin_id" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	Admin    User   `json:"-" gorm:"foreignKey:AdminID"`
	Teachers []User `json:"-" gorm:"many2many:group_teachers;"`
	Students []User `json:"-" gorm:"many2many:group_students;"`
	Posts    []Post `json:"-" gorm:"foreignKey:GroupID"`
}

// HasTeacher проверяет, входит ли пользователь в преподаватели группы
func (g *Group) HasTeacher(userID uuid.UUID) bool {
	for _, t := range g.Teachers {
		if t.ID == userID {
			return true
		}
	}
	return false
}

// HasStudent проверяет, входит ли пользователь в студенты группы
func (g *Group) HasStudent(userID uuid.UUID) bool {
	for _, s := range g.Students {
		if s.ID == userID {
			return true
		}
	}
	return false
}
