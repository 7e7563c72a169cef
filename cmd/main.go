package main

import (
	"fmt"
	"log"

	"github.com/ArAversi0/TaskTalk/internal/config"
	"github.com/ArAversi0/TaskTalk/internal/handlers"
	"github.com/ArAversi0/TaskTalk/internal/repository"
	"github.com/ArAversi0/TaskTalk/internal/services"
	"github.com/ArAversi0/TaskTalk/pkg/database"
	"github.com/ArAversi0/TaskTalk/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Инициализируем файловое хранилище
	fileStorage, err := storage.NewStorage(cfg.UploadPath, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	groupRepo := repository.NewGroupRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	tileRepo := repository.NewTileRepository(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	groupService := services.NewGroupService(db.DB, groupRepo, userRepo, postRepo, notificationRepo, fileStorage)
	postService := services.NewPostService(db.DB, groupRepo, postRepo, notificationRepo, fileStorage)
	notificationService := services.NewNotificationService(db.DB, notificationRepo, postRepo, groupRepo)
	tileService := services.NewTileService(tileRepo)

	// Собираем роутер
	router := handlers.NewRouter(authService, groupService, postService, notificationService, tileService)

	// Запускаем сервер
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting TaskTalk server on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
