package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/internal/repository"
)

// Отработанные уведомления удаляются через неделю после создания
const notificationRetention = 7 * 24 * time.Hour

// Напоминание создается за день до дедлайна, в день дедлайна и после него
const reminderThresholdDays = 1

// NotificationService управляет жизненным циклом уведомлений.
// Напоминания о дедлайнах генерируются лениво — при запросе списка,
// фоновых задач нет.
type NotificationService interface {
	ListForUser(userID uuid.UUID) ([]*models.Notification, error)
	RespondToInvite(notifID uuid.UUID, actor *models.User, action string) (*models.Notification, error)
	MarkAllViewed(userID uuid.UUID) error
	DeleteNotification(notifID uuid.UUID, actor *models.User) error
}

type notificationService struct {
	db     *gorm.DB
	notifs repository.NotificationRepository
	posts  repository.PostRepository
	groups repository.GroupRepository
	now    func() time.Time
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	db *gorm.DB,
	notifs repository.NotificationRepository,
	posts repository.PostRepository,
	groups repository.GroupRepository,
) NotificationService {
	return &notificationService{db: db, notifs: notifs, posts: posts, groups: groups, now: time.Now}
}

// ListForUser возвращает уведомления пользователя, предварительно удалив
// устаревшие и сгенерировав напоминания о подступающих дедлайнах
func (s *notificationService) ListForUser(userID uuid.UUID) ([]*models.Notification, error) {
	if err := s.notifs.DeleteStale(s.now().Add(-notificationRetention)); err != nil {
		return nil, fmt.Errorf("failed to cleanup notifications: %w", err)
	}
	if err := s.generateReminders(); err != nil {
		return nil, fmt.Errorf("failed to generate reminders: %w", err)
	}
	return s.notifs.ListByUser(userID)
}

// generateReminders создает напоминания студентам групп, у чьих постов
// дедлайн завтра, сегодня или уже прошел. Тройка (студент, пост, дата)
// уникальна: сколько бы раз ни запрашивался список, напоминание одно.
func (s *notificationService) generateReminders() error {
	posts, err := s.posts.ListWithDeadline()
	if err != nil {
		return err
	}
	today := models.NewDate(s.now())

	for _, post := range posts {
		if post.Deadline == nil {
			continue
		}
		daysLeft := post.Deadline.DaysFrom(today)
		if daysLeft > reminderThresholdDays {
			continue
		}

		students, err := s.groups.ListStudents(post.GroupID)
		if err != nil {
			return err
		}
		for _, student := range students {
			exists, err := s.notifs.ReminderExists(student.ID, post.ID, *post.Deadline)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			err = s.notifs.Create(&models.Notification{
				ID:           uuid.New(),
				Type:         models.NotificationTypeReminder,
				ToUserID:     student.ID,
				GroupID:      &post.GroupID,
				PostID:       &post.ID,
				DeadlineDate: post.Deadline,
				Status:       models.NotificationStatusPending,
				Message: fmt.Sprintf("Напоминание о дедлайне по посту '%s' в группе '%s'",
					post.Title, post.Group.Name),
				CreatedAt: s.now(),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// RespondToInvite принимает или отклоняет приглашение. Принятие добавляет
// пользователя в преподаватели или студенты группы в зависимости от роли.
func (s *notificationService) RespondToInvite(notifID uuid.UUID, actor *models.User, action string) (*models.Notification, error) {
	notif, err := s.notifs.GetByID(notifID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: приглашение не найдено", models.ErrNotFound)
		}
		return nil, err
	}
	if notif.Type != models.NotificationTypeInvite || notif.ToUserID != actor.ID {
		return nil, fmt.Errorf("%w: приглашение не найдено", models.ErrNotFound)
	}
	if notif.Status != models.NotificationStatusPending {
		return nil, fmt.Errorf("%w: Приглашение уже обработано", models.ErrConflict)
	}

	switch action {
	case "accept":
		err = s.db.Transaction(func(tx *gorm.DB) error {
			notifs := s.notifs.WithTx(tx)
			groups := s.groups.WithTx(tx)

			notif.Status = models.NotificationStatusAccepted
			if err := notifs.Update(notif); err != nil {
				return err
			}
			if notif.GroupID == nil {
				return nil
			}
			group, err := groups.GetByID(*notif.GroupID)
			if err != nil {
				return err
			}
			if actor.Role == models.RoleTeacher {
				if group.HasTeacher(actor.ID) {
					return nil
				}
				return groups.AddTeacher(group, actor)
			}
			if group.HasStudent(actor.ID) {
				return nil
			}
			return groups.AddStudent(group, actor)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to accept invite: %w", err)
		}
	case "decline":
		notif.Status = models.NotificationStatusDeclined
		if err := s.notifs.Update(notif); err != nil {
			return nil, fmt.Errorf("failed to decline invite: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: Некорректное действие", models.ErrInvalidArgument)
	}
	return notif, nil
}

func (s *notificationService) MarkAllViewed(userID uuid.UUID) error {
	return s.notifs.MarkAllViewed(userID)
}

// DeleteNotification удаляет уведомление; доступно только его получателю
func (s *notificationService) DeleteNotification(notifID uuid.UUID, actor *models.User) error {
	notif, err := s.notifs.GetByID(notifID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: уведомление не найдено", models.ErrNotFound)
		}
		return err
	}
	if notif.ToUserID != actor.ID {
		return fmt.Errorf("%w: Нет прав на удаление", models.ErrForbidden)
	}
	return s.notifs.Delete(notif.ID)
}
