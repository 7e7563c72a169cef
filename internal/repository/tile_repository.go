package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// TileRepository интерфейс для работы с плитками
type TileRepository interface {
	Create(tile *models.Tile) error
	GetByID(id uuid.UUID) (*models.Tile, error)
	List() ([]*models.Tile, error)
	Update(tile *models.Tile) error
	Delete(id uuid.UUID) error
}

type tileRepository struct{ db *gorm.DB }

// NewTileRepository создает новый репозиторий плиток
func NewTileRepository(db *gorm.DB) TileRepository { return &tileRepository{db: db} }

func (r *tileRepository) Create(tile *models.Tile) error {
	if tile.ID == uuid.Nil {
		tile.ID = uuid.New()
	}
	return r.db.Create(tile).Error
}

func (r *tileRepository) GetByID(id uuid.UUID) (*models.Tile, error) {
	var tile models.Tile
	err := r.db.First(&tile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tile, nil
}

func (r *tileRepository) List() ([]*models.Tile, error) {
	var tiles []*models.Tile
	err := r.db.Order("created_at DESC").Find(&tiles).Error
	return tiles, err
}

func (r *tileRepository) Update(tile *models.Tile) error {
	return r.db.Save(tile).Error
}

func (r *tileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tile{}, "id = ?", id).Error
}
