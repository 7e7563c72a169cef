package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/pkg/database"
)

// Заполняет базу демонстрационными данными: преподаватель с группой,
// студенты, посты с дедлайнами и одно ожидающее приглашение.
func main() {
	db, err := gorm.Open(sqlite.Open("tasktalk.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Пароль у всех демо-пользователей одинаковый
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		ID:         uuid.New(),
		Email:      "pugachev@tasktalk.ru",
		Password:   string(hash),
		FirstName:  "Александр",
		LastName:   "Пугачев",
		MiddleName: "Сергеевич",
		Role:       models.RoleTeacher,
		About:      "Преподаю физику и математику",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	student1 := models.User{
		ID:         uuid.New(),
		Email:      "ivanov@tasktalk.ru",
		Password:   string(hash),
		FirstName:  "Иван",
		LastName:   "Иванов",
		MiddleName: "Иванович",
		Role:       models.RoleStudent,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	student2 := models.User{
		ID:         uuid.New(),
		Email:      "petrova@tasktalk.ru",
		Password:   string(hash),
		FirstName:  "Мария",
		LastName:   "Петрова",
		MiddleName: "Андреевна",
		Role:       models.RoleStudent,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	for _, user := range []*models.User{&admin, &student1, &student2} {
		if err := db.Create(user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", user.Email, err)
		}
	}

	group := models.Group{
		ID:        uuid.New(),
		Name:      "11 класс — Физика",
		Info:      "Вечерний поток, занятия по вторникам и четвергам",
		AdminID:   admin.ID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&group).Error; err != nil {
		log.Printf("Failed to create group: %v", err)
	}
	if err := db.Model(&group).Association("Teachers").Append(&admin); err != nil {
		log.Printf("Failed to add teacher: %v", err)
	}
	if err := db.Model(&group).Association("Students").Append(&student1); err != nil {
		log.Printf("Failed to add student: %v", err)
	}

	soon := models.NewDate(time.Now().Add(24 * time.Hour))
	later := models.NewDate(time.Now().Add(14 * 24 * time.Hour))
	posts := []models.Post{
		{
			ID:        uuid.New(),
			GroupID:   group.ID,
			AuthorID:  admin.ID,
			Title:     "Кинематика — равномерное движение",
			Content:   "Решить задачи на равномерное прямолинейное движение. Внимательно следите за единицами измерения.",
			Deadline:  &soon,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:        uuid.New(),
			GroupID:   group.ID,
			AuthorID:  admin.ID,
			Title:     "Динамика — законы Ньютона",
			Content:   "Применить законы Ньютона для решения задач на движение тел под действием сил.",
			Deadline:  &later,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	for _, post := range posts {
		if err := db.Create(&post).Error; err != nil {
			log.Printf("Failed to create post %s: %v", post.Title, err)
		}
	}

	comment := models.Comment{
		ID:        uuid.New(),
		PostID:    posts[0].ID,
		AuthorID:  student1.ID,
		Text:      "Можно ли сдать решение в виде фотографии тетради?",
		CreatedAt: time.Now(),
	}
	if err := db.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment: %v", err)
	}

	invite := models.Notification{
		ID:         uuid.New(),
		Type:       models.NotificationTypeInvite,
		ToUserID:   student2.ID,
		FromUserID: &admin.ID,
		GroupID:    &group.ID,
		Status:     models.NotificationStatusPending,
		Message:    fmt.Sprintf("Вас пригласили в группу '%s'", group.Name),
		CreatedAt:  time.Now(),
	}
	if err := db.Create(&invite).Error; err != nil {
		log.Printf("Failed to create invite: %v", err)
	}

	log.Println("Seed data created:")
	log.Printf("  admin:    %s / secret123", admin.Email)
	log.Printf("  students: %s, %s / secret123", student1.Email, student2.Email)
	log.Printf("  group:    %s (%s)", group.Name, group.ID)
}
