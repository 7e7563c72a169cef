package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType определяет типы уведомлений
type NotificationType string

const (
	NotificationTypeInvite   NotificationType = "invite"
	NotificationTypeExclude  NotificationType = "exclude"
	NotificationTypeReminder NotificationType = "reminder"
)

// NotificationStatus определяет статусы уведомлений
type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusAccepted NotificationStatus = "accepted"
	NotificationStatusDeclined NotificationStatus = "declined"
	NotificationStatusViewed   NotificationStatus = "viewed"
)

// Notification представляет уведомление пользователю: приглашение в группу,
// исключение из группы или напоминание о дедлайне поста.
type Notification struct {
	ID           uuid.UUID          `json:"id" gorm:"type:text;primaryKey"`
	Type         NotificationType   `json:"notif_type" gorm:"column:notif_type;type:text;not null"`
	ToUserID     uuid.UUID          `json:"to_user" gorm:"type:text;not null;index"`
	FromUserID   *uuid.UUID         `json:"from_user" gorm:"type:text"`
	GroupID      *uuid.UUID         `json:"group" gorm:"type:text;index"`
	PostID       *uuid.UUID         `json:"post" gorm:"type:text;index"`
	DeadlineDate *Date              `json:"deadline_date" gorm:"type:date"`
	Status       NotificationStatus `json:"status" gorm:"type:text;default:'pending'"`
	Message      string             `json:"message"`
	CreatedAt    time.Time          `json:"created_at"`

	// Связи
	ToUser   User   `json:"-" gorm:"foreignKey:ToUserID"`
	FromUser *User  `json:"-" gorm:"foreignKey:FromUserID"`
	Group    *Group `json:"-" gorm:"foreignKey:GroupID"`
	Post     *Post  `json:"-" gorm:"foreignKey:PostID"`
}
