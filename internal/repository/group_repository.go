package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// GroupRepository интерфейс для работы с группами и их составом
type GroupRepository interface {
	WithTx(tx *gorm.DB) GroupRepository

	Create(group *models.Group) error
	GetByID(id uuid.UUID) (*models.Group, error)
	Delete(id uuid.UUID) error
	ListByMember(userID uuid.UUID) ([]*models.Group, error)

	AddTeacher(group *models.Group, user *models.User) error
	AddStudent(group *models.Group, user *models.User) error
	RemoveMember(group *models.Group, user *models.User) error
	ClearMembers(group *models.Group) error
	ListStudents(groupID uuid.UUID) ([]models.User, error)
}

type groupRepository struct{ db *gorm.DB }

// NewGroupRepository создает новый репозиторий групп
func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) WithTx(tx *gorm.DB) GroupRepository { return &groupRepository{db: tx} }

func (r *groupRepository) Create(group *models.Group) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	return r.db.Create(group).Error
}

// GetByID получает группу вместе с составом и постами
func (r *groupRepository) GetByID(id uuid.UUID) (*models.Group, error) {
	var g models.Group
	err := r.db.
		Preload("Admin").
		Preload("Teachers").
		Preload("Students").
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("posts.created_at DESC") }).
		Preload("Posts.Author").
		Preload("Posts.Files").
		Preload("Posts.Comments").
		Preload("Posts.Comments.Author").
		First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Group{}, "id = ?", id).Error
}

// ListByMember возвращает группы, где пользователь админ, преподаватель
// или студент, без дубликатов
func (r *groupRepository) ListByMember(userID uuid.UUID) ([]*models.Group, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Group{}).
		Distinct("groups.id").
		Joins("LEFT JOIN group_teachers gt ON gt.group_id = groups.id").
		Joins("LEFT JOIN group_students gs ON gs.group_id = groups.id").
		Where("groups.admin_id = ? OR gt.user_id = ? OR gs.user_id = ?", userID, userID, userID).
		Pluck("groups.id", &ids).Error
	if err != nil {
		return nil, err
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *groupRepository) AddTeacher(group *models.Group, user *models.User) error {
	return r.db.Model(group).Association("Teachers").Append(user)
}

func (r *groupRepository) AddStudent(group *models.Group, user *models.User) error {
	return r.db.Model(group).Association("Students").Append(user)
}

// RemoveMember убирает пользователя из преподавателей и студентов группы.
// Отсутствие пользователя в составе не считается ошибкой.
func (r *groupRepository) RemoveMember(group *models.Group, user *models.User) error {
	if err := r.db.Model(group).Association("Teachers").Delete(user); err != nil {
		return err
	}
	return r.db.Model(group).Association("Students").Delete(user)
}

// ClearMembers очищает состав группы перед ее удалением
func (r *groupRepository) ClearMembers(group *models.Group) error {
	if err := r.db.Model(group).Association("Teachers").Clear(); err != nil {
		return err
	}
	return r.db.Model(group).Association("Students").Clear()
}

// ListStudents возвращает студентов группы
func (r *groupRepository) ListStudents(groupID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN group_students gs ON gs.user_id = users.id").
		Where("gs.group_id = ?", groupID).
		Find(&users).Error
	return users, err
}
