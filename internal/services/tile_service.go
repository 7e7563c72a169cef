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

// TileService управляет плитками главной страницы
type TileService interface {
	List() ([]*models.Tile, error)
	Get(id uuid.UUID) (*models.Tile, error)
	Create(title, description string) (*models.Tile, error)
	Update(id uuid.UUID, title, description *string) (*models.Tile, error)
	Delete(id uuid.UUID) error
}

type tileService struct {
	tiles repository.TileRepository
}

// NewTileService создает новый сервис плиток
func NewTileService(tiles repository.TileRepository) TileService {
	return &tileService{tiles: tiles}
}

func (s *tileService) List() ([]*models.Tile, error) {
	return s.tiles.List()
}

func (s *tileService) Get(id uuid.UUID) (*models.Tile, error) {
	tile, err := s.tiles.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: плитка не найдена", models.ErrNotFound)
		}
		return nil, err
	}
	return tile, nil
}

func (s *tileService) Create(title, description string) (*models.Tile, error) {
	if title == "" {
		return nil, models.NewValidationError().Add("title", "Заголовок обязателен")
	}
	tile := &models.Tile{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.tiles.Create(tile); err != nil {
		return nil, fmt.Errorf("failed to create tile: %w", err)
	}
	return tile, nil
}

func (s *tileService) Update(id uuid.UUID, title, description *string) (*models.Tile, error) {
	tile, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		if *title == "" {
			return nil, models.NewValidationError().Add("title", "Заголовок обязателен")
		}
		tile.Title = *title
	}
	if description != nil {
		tile.Description = *description
	}
	if err := s.tiles.Update(tile); err != nil {
		return nil, fmt.Errorf("failed to update tile: %w", err)
	}
	return tile, nil
}

func (s *tileService) Delete(id uuid.UUID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.tiles.Delete(id)
}
