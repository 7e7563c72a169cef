package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole определяет роли пользователей
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// Valid проверяет, что роль входит в список допустимых
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User представляет пользователя системы.
// Админство не хранится в роли: админ — это отношение пользователя к группе.
type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName string    `json:"middle_name"`
	Role       UserRole  `json:"role" gorm:"type:text;not null"`
	About      string    `json:"about"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName возвращает полное имя: "Фамилия Имя Отчество"
func (u *User) FullName() string {
	return strings.TrimSpace(u.LastName + " " + u.FirstName + " " + u.MiddleName)
}

// ShortName возвращает ФИО с инициалами: "Фамилия И.О."
func (u *User) ShortName() string {
	initials := ""
	if u.FirstName != "" {
		initials += string([]rune(u.FirstName)[:1]) + "."
	}
	if u.MiddleName != "" {
		initials += string([]rune(u.MiddleName)[:1]) + "."
	}
	return strings.TrimSpace(u.LastName + " " + initials)
}
