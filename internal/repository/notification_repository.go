package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// NotificationRepository интерфейс для работы с уведомлениями
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository

	Create(notification *models.Notification) error
	GetByID(id uuid.UUID) (*models.Notification, error)
	ListByUser(userID uuid.UUID) ([]*models.Notification, error)
	Update(notification *models.Notification) error
	Delete(id uuid.UUID) error
	DeleteByGroup(groupID uuid.UUID) error
	DeleteByPosts(postIDs []uuid.UUID) error

	// Жизненный цикл приглашений и напоминаний
	DemotePendingInvites(toUserID, groupID uuid.UUID) error
	ReminderExists(toUserID, postID uuid.UUID, deadline models.Date) (bool, error)
	MarkAllViewed(userID uuid.UUID) error
	DeleteStale(olderThan time.Time) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository создает новый репозиторий уведомлений
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByID(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.
		Preload("FromUser").
		Preload("Group").
		Preload("Post").
		First(&notification, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListByUser возвращает уведомления пользователя от новых к старым
func (r *notificationRepository) ListByUser(userID uuid.UUID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.
		Preload("FromUser").
		Preload("Group").
		Preload("Post").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *notificationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}

func (r *notificationRepository) DeleteByGroup(groupID uuid.UUID) error {
	return r.db.Delete(&models.Notification{}, "group_id = ?", groupID).Error
}

func (r *notificationRepository) DeleteByPosts(postIDs []uuid.UUID) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Delete(&models.Notification{}, "post_id IN ?", postIDs).Error
}

// DemotePendingInvites переводит все ожидающие приглашения пользователя
// в эту группу в статус declined. Новое приглашение всегда создается
// в той же транзакции, поэтому pending-приглашение остается ровно одно.
func (r *notificationRepository) DemotePendingInvites(toUserID, groupID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("notif_type = ? AND to_user_id = ? AND group_id = ? AND status = ?",
			models.NotificationTypeInvite, toUserID, groupID, models.NotificationStatusPending).
		Update("status", models.NotificationStatusDeclined).Error
}

// ReminderExists проверяет наличие напоминания по тройке (пользователь, пост, дата)
func (r *notificationRepository) ReminderExists(toUserID, postID uuid.UUID, deadline models.Date) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("notif_type = ? AND to_user_id = ? AND post_id = ? AND deadline_date = ?",
			models.NotificationTypeReminder, toUserID, postID, deadline).
		Count(&count).Error
	return count > 0, err
}

// MarkAllViewed помечает просмотренными все pending-уведомления пользователя,
// кроме приглашений: им нужен явный accept/decline.
func (r *notificationRepository) MarkAllViewed(userID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("to_user_id = ? AND status = ? AND notif_type <> ?",
			userID, models.NotificationStatusPending, models.NotificationTypeInvite).
		Update("status", models.NotificationStatusViewed).Error
}

// DeleteStale удаляет отработанные уведомления старше отметки:
// принятые, отклоненные и уведомления об исключении.
func (r *notificationRepository) DeleteStale(olderThan time.Time) error {
	return r.db.
		Where("(status IN ? OR notif_type = ?) AND created_at < ?",
			[]models.NotificationStatus{models.NotificationStatusAccepted, models.NotificationStatusDeclined},
			models.NotificationTypeExclude,
			olderThan).
		Delete(&models.Notification{}).Error
}
