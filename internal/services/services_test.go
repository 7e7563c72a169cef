package services

import (
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/internal/repository"
	"github.com/ArAversi0/TaskTalk/pkg/database"
)

// newTestDB открывает базу в памяти. Пул ограничен одним соединением,
// иначе каждое соединение получает собственную пустую ":memory:" базу.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// env собирает репозитории и сервисы поверх одной тестовой базы
type env struct {
	db      *gorm.DB
	users   repository.UserRepository
	groups  repository.GroupRepository
	posts   repository.PostRepository
	notifs  repository.NotificationRepository
	storage *stubStorage

	groupSvc GroupService
	postSvc  PostService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)
	e := &env{
		db:      db,
		users:   repository.NewUserRepository(db),
		groups:  repository.NewGroupRepository(db),
		posts:   repository.NewPostRepository(db),
		notifs:  repository.NewNotificationRepository(db),
		storage: &stubStorage{},
	}
	e.groupSvc = NewGroupService(db, e.groups, e.users, e.posts, e.notifs, e.storage)
	e.postSvc = NewPostService(db, e.groups, e.posts, e.notifs, e.storage)
	return e
}

func (e *env) makeUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "hash",
		FirstName: "Иван",
		LastName:  "Иванов",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func (e *env) makeGroup(t *testing.T, admin *models.User, name string) *models.Group {
	t.Helper()
	g, err := e.groupSvc.CreateGroup(admin, name, "")
	if err != nil {
		t.Fatalf("create group %s: %v", name, err)
	}
	return g
}

func (e *env) makePost(t *testing.T, g *models.Group, admin *models.User, title, deadline string) *models.Post {
	t.Helper()
	p, err := e.postSvc.CreatePost(g.ID, admin, CreatePostInput{Title: title, Deadline: deadline})
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return p
}

func (e *env) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// stubStorage подменяет файловое хранилище: пути выдумываются,
// удаленные запоминаются
type stubStorage struct {
	removed []string
}

func (s *stubStorage) Save(file *multipart.FileHeader, postID uuid.UUID) (string, error) {
	return fmt.Sprintf("post_files/%s/%s", postID, file.Filename), nil
}

func (s *stubStorage) Remove(path string) {
	s.removed = append(s.removed, path)
}
