package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// PostRepository интерфейс для работы с постами, файлами и комментариями
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository

	Create(post *models.Post) error
	GetByID(id uuid.UUID) (*models.Post, error)
	GetInGroup(postID, groupID uuid.UUID) (*models.Post, error)
	ListByGroup(groupID uuid.UUID) ([]*models.Post, error)
	ListPostIDsByGroup(groupID uuid.UUID) ([]uuid.UUID, error)
	ListWithDeadline() ([]*models.Post, error)
	Update(post *models.Post) error
	DeleteByIDs(ids []uuid.UUID) error

	CreateFile(file *models.PostFile) error
	GetFileInPost(fileID, postID uuid.UUID) (*models.PostFile, error)
	DeleteFile(id uuid.UUID) error
	ListFilesByPosts(postIDs []uuid.UUID) ([]models.PostFile, error)
	DeleteFilesByPosts(postIDs []uuid.UUID) error

	CreateComment(comment *models.Comment) error
	GetCommentInPost(commentID, postID uuid.UUID) (*models.Comment, error)
	ListReplies(parentID uuid.UUID) ([]models.Comment, error)
	DeleteComments(ids []uuid.UUID) error
	DeleteCommentsByPosts(postIDs []uuid.UUID) error
}

type postRepository struct{ db *gorm.DB }

// NewPostRepository создает новый репозиторий постов
func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository { return &postRepository{db: tx} }

func (r *postRepository) Create(post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return r.db.Create(post).Error
}

func (r *postRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Author").
		Preload("Group").
		Preload("Files").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Comments.Author")
}

func (r *postRepository) GetByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.preloaded().First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetInGroup получает пост, принадлежащий конкретной группе
func (r *postRepository) GetInGroup(postID, groupID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.preloaded().First(&post, "id = ? AND group_id = ?", postID, groupID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByGroup возвращает посты группы от новых к старым
func (r *postRepository) ListByGroup(groupID uuid.UUID) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.preloaded().
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListPostIDsByGroup(groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Pluck("id", &ids).Error
	return ids, err
}

// ListWithDeadline возвращает посты с установленным дедлайном
func (r *postRepository) ListWithDeadline() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Group").Where("deadline IS NOT NULL").Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(post *models.Post) error {
	post.UpdatedAt = time.Now()
	return r.db.Save(post).Error
}

func (r *postRepository) DeleteByIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.Post{}, "id IN ?", ids).Error
}

func (r *postRepository) CreateFile(file *models.PostFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	return r.db.Create(file).Error
}

func (r *postRepository) GetFileInPost(fileID, postID uuid.UUID) (*models.PostFile, error) {
	var file models.PostFile
	err := r.db.First(&file, "id = ? AND post_id = ?", fileID, postID).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *postRepository) DeleteFile(id uuid.UUID) error {
	return r.db.Delete(&models.PostFile{}, "id = ?", id).Error
}

func (r *postRepository) ListFilesByPosts(postIDs []uuid.UUID) ([]models.PostFile, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var files []models.PostFile
	err := r.db.Where("post_id IN ?", postIDs).Find(&files).Error
	return files, err
}

func (r *postRepository) DeleteFilesByPosts(postIDs []uuid.UUID) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Delete(&models.PostFile{}, "post_id IN ?", postIDs).Error
}

func (r *postRepository) CreateComment(comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.Create(comment).Error
}

func (r *postRepository) GetCommentInPost(commentID, postID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ? AND post_id = ?", commentID, postID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListReplies возвращает прямые ответы на комментарий
func (r *postRepository) ListReplies(parentID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_id = ?", parentID).Find(&comments).Error
	return comments, err
}

func (r *postRepository) DeleteComments(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.Comment{}, "id IN ?", ids).Error
}

func (r *postRepository) DeleteCommentsByPosts(postIDs []uuid.UUID) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Delete(&models.Comment{}, "post_id IN ?", postIDs).Error
}
