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

// GroupService управляет группами и их составом
type GroupService interface {
	CreateGroup(admin *models.User, name, info string) (*models.Group, error)
	GetGroup(id uuid.UUID) (*models.Group, error)
	DeleteGroup(groupID uuid.UUID, actor *models.User) error
	ListMyGroups(userID uuid.UUID) ([]*models.Group, error)

	InviteMember(groupID uuid.UUID, actor *models.User, email string) (*models.Notification, error)
	ExcludeMember(groupID uuid.UUID, actor *models.User, userID uuid.UUID) error
	LeaveGroup(groupID uuid.UUID, actor *models.User) error
}

type groupService struct {
	db      *gorm.DB
	groups  repository.GroupRepository
	users   repository.UserRepository
	posts   repository.PostRepository
	notifs  repository.NotificationRepository
	storage FileRemover
}

// FileRemover удаляет сохраненные файлы при каскадном удалении постов
type FileRemover interface {
	Remove(path string)
}

// NewGroupService создает новый сервис групп
func NewGroupService(
	db *gorm.DB,
	groups repository.GroupRepository,
	users repository.UserRepository,
	posts repository.PostRepository,
	notifs repository.NotificationRepository,
	storage FileRemover,
) GroupService {
	return &groupService{db: db, groups: groups, users: users, posts: posts, notifs: notifs, storage: storage}
}

// CreateGroup создает группу; создатель становится админом и попадает
// в преподаватели группы.
func (s *groupService) CreateGroup(admin *models.User, name, info string) (*models.Group, error) {
	g := &models.Group{
		ID:        uuid.New(),
		Name:      name,
		Info:      info,
		AdminID:   admin.ID,
		CreatedAt: time.Now(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		groups := s.groups.WithTx(tx)
		if err := groups.Create(g); err != nil {
			return err
		}
		return groups.AddTeacher(g, admin)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return s.groups.GetByID(g.ID)
}

func (s *groupService) GetGroup(id uuid.UUID) (*models.Group, error) {
	g, err := s.groups.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: группа не найдена", models.ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

// DeleteGroup удаляет группу вместе с постами, файлами, комментариями
// и уведомлениями в одной транзакции
func (s *groupService) DeleteGroup(groupID uuid.UUID, actor *models.User) error {
	g, err := s.GetGroup(groupID)
	if err != nil {
		return err
	}
	if g.AdminID != actor.ID {
		return fmt.Errorf("%w: Удалять группу может только админ", models.ErrForbidden)
	}

	var removed []models.PostFile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		groups := s.groups.WithTx(tx)
		posts := s.posts.WithTx(tx)
		notifs := s.notifs.WithTx(tx)

		postIDs, err := posts.ListPostIDsByGroup(groupID)
		if err != nil {
			return err
		}
		removed, err = posts.ListFilesByPosts(postIDs)
		if err != nil {
			return err
		}
		if err := posts.DeleteCommentsByPosts(postIDs); err != nil {
			return err
		}
		if err := posts.DeleteFilesByPosts(postIDs); err != nil {
			return err
		}
		if err := posts.DeleteByIDs(postIDs); err != nil {
			return err
		}
		if err := notifs.DeleteByGroup(groupID); err != nil {
			return err
		}
		if err := groups.ClearMembers(g); err != nil {
			return err
		}
		return groups.Delete(groupID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	for _, f := range removed {
		s.storage.Remove(f.File)
	}
	return nil
}

func (s *groupService) ListMyGroups(userID uuid.UUID) ([]*models.Group, error) {
	return s.groups.ListByMember(userID)
}

// InviteMember приглашает пользователя по email. Старые pending-приглашения
// этого пользователя в эту группу переводятся в declined в той же транзакции,
// так что ожидающее приглашение всегда ровно одно.
func (s *groupService) InviteMember(groupID uuid.UUID, actor *models.User, email string) (*models.Notification, error) {
	g, err := s.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.AdminID != actor.ID {
		return nil, fmt.Errorf("%w: Только админ может приглашать в группу", models.ErrForbidden)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: Email обязателен", models.ErrInvalidArgument)
	}

	toUser, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Пользователь с таким email не найден", models.ErrNotFound)
		}
		return nil, err
	}

	notif := &models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationTypeInvite,
		ToUserID:   toUser.ID,
		FromUserID: &actor.ID,
		GroupID:    &g.ID,
		Status:     models.NotificationStatusPending,
		Message:    fmt.Sprintf("Вас пригласили в группу '%s'", g.Name),
		CreatedAt:  time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		notifs := s.notifs.WithTx(tx)
		if err := notifs.DemotePendingInvites(toUser.ID, g.ID); err != nil {
			return err
		}
		return notifs.Create(notif)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return s.notifs.GetByID(notif.ID)
}

// ExcludeMember исключает участника из группы и шлет ему уведомление.
// Исключение отсутствующего участника — это no-op без ошибки.
func (s *groupService) ExcludeMember(groupID uuid.UUID, actor *models.User, userID uuid.UUID) error {
	g, err := s.GetGroup(groupID)
	if err != nil {
		return err
	}
	if g.AdminID != actor.ID {
		return fmt.Errorf("%w: Только админ может исключать участников", models.ErrForbidden)
	}

	member, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: Пользователь не найден", models.ErrNotFound)
		}
		return err
	}
	if member.ID == g.AdminID {
		return fmt.Errorf("%w: Нельзя исключить администратора", models.ErrInvalidArgument)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		groups := s.groups.WithTx(tx)
		notifs := s.notifs.WithTx(tx)
		if err := groups.RemoveMember(g, member); err != nil {
			return err
		}
		return notifs.Create(&models.Notification{
			ID:         uuid.New(),
			Type:       models.NotificationTypeExclude,
			ToUserID:   member.ID,
			FromUserID: &actor.ID,
			GroupID:    &g.ID,
			Status:     models.NotificationStatusPending,
			Message:    fmt.Sprintf("Вас исключили из группы '%s'", g.Name),
			CreatedAt:  time.Now(),
		})
	})
}

// LeaveGroup выводит участника из группы по его собственной инициативе
func (s *groupService) LeaveGroup(groupID uuid.UUID, actor *models.User) error {
	g, err := s.GetGroup(groupID)
	if err != nil {
		return err
	}
	if g.AdminID == actor.ID {
		return fmt.Errorf("%w: Админ не может выйти из своей группы", models.ErrInvalidArgument)
	}
	if !g.HasTeacher(actor.ID) && !g.HasStudent(actor.ID) {
		return fmt.Errorf("%w: Вы не являетесь участником этой группы", models.ErrInvalidArgument)
	}
	return s.groups.RemoveMember(g, actor)
}
