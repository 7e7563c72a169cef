package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/internal/repository"
)

// FileStore сохраняет загруженные файлы постов
type FileStore interface {
	FileRemover
	Save(file *multipart.FileHeader, postID uuid.UUID) (string, error)
}

// PostService управляет постами, их файлами и комментариями
type PostService interface {
	ListPosts(groupID uuid.UUID) ([]*models.Post, error)
	GetPost(groupID, postID uuid.UUID) (*models.Post, error)
	CreatePost(groupID uuid.UUID, actor *models.User, input CreatePostInput) (*models.Post, error)
	UpdatePost(groupID, postID uuid.UUID, actor *models.User, input UpdatePostInput) (*models.Post, error)
	DeletePost(groupID, postID uuid.UUID, actor *models.User) error

	AddComment(groupID, postID uuid.UUID, actor *models.User, text string, parentID *uuid.UUID) (*models.Comment, error)
	DeleteComment(groupID, postID, commentID uuid.UUID, actor *models.User) error
}

// CreatePostInput данные нового поста
type CreatePostInput struct {
	Title    string
	Content  string
	Deadline string
	Files    []*multipart.FileHeader
}

// UpdatePostInput частичное обновление поста; nil означает "не менять",
// пустая строка дедлайна снимает его.
type UpdatePostInput struct {
	Title           *string
	Content         *string
	Deadline        *string
	FileIDsToDelete []uuid.UUID
	Files           []*multipart.FileHeader
}

type postService struct {
	db      *gorm.DB
	groups  repository.GroupRepository
	posts   repository.PostRepository
	notifs  repository.NotificationRepository
	storage FileStore
}

// NewPostService создает новый сервис постов
func NewPostService(
	db *gorm.DB,
	groups repository.GroupRepository,
	posts repository.PostRepository,
	notifs repository.NotificationRepository,
	storage FileStore,
) PostService {
	return &postService{db: db, groups: groups, posts: posts, notifs: notifs, storage: storage}
}

func (s *postService) getGroup(groupID uuid.UUID) (*models.Group, error) {
	g, err := s.groups.GetByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: группа не найдена", models.ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

func (s *postService) ListPosts(groupID uuid.UUID) ([]*models.Post, error) {
	if _, err := s.getGroup(groupID); err != nil {
		return nil, err
	}
	return s.posts.ListByGroup(groupID)
}

func (s *postService) GetPost(groupID, postID uuid.UUID) (*models.Post, error) {
	if _, err := s.getGroup(groupID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetInGroup(postID, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: пост не найден", models.ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}

func parseDeadline(raw string) (*models.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, models.NewValidationError().Add("deadline", "Дата должна быть в формате ГГГГ-ММ-ДД")
	}
	return &d, nil
}

// CreatePost создает пост и прикрепляет загруженные файлы.
// Создавать посты может только админ группы.
func (s *postService) CreatePost(groupID uuid.UUID, actor *models.User, input CreatePostInput) (*models.Post, error) {
	g, err := s.getGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.AdminID != actor.ID {
		return nil, fmt.Errorf("%w: Только администратор группы может создавать посты", models.ErrForbidden)
	}
	if input.Title == "" {
		return nil, models.NewValidationError().Add("title", "Заголовок обязателен")
	}
	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:        uuid.New(),
		GroupID:   g.ID,
		AuthorID:  actor.ID,
		Title:     input.Title,
		Content:   input.Content,
		Deadline:  deadline,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.Create(post); err != nil {
			return err
		}
		return s.attachFiles(posts, post.ID, input.Files)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return s.posts.GetByID(post.ID)
}

func (s *postService) attachFiles(posts repository.PostRepository, postID uuid.UUID, files []*multipart.FileHeader) error {
	for _, fh := range files {
		path, err := s.storage.Save(fh, postID)
		if err != nil {
			return err
		}
		pf := &models.PostFile{
			ID:           uuid.New(),
			PostID:       postID,
			File:         path,
			OriginalName: fh.Filename,
			UploadedAt:   time.Now(),
		}
		if err := posts.CreateFile(pf); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePost обновляет пост: удаляет перечисленные файлы (чужие и неизвестные
// id молча пропускаются), применяет частичные изменения полей и прикрепляет
// новые файлы — все в одной транзакции.
func (s *postService) UpdatePost(groupID, postID uuid.UUID, actor *models.User, input UpdatePostInput) (*models.Post, error) {
	g, err := s.getGroup(groupID)
	if err != nil {
		return nil, err
	}
	if g.AdminID != actor.ID {
		return nil, fmt.Errorf("%w: Редактировать пост может только админ", models.ErrForbidden)
	}
	post, err := s.GetPost(groupID, postID)
	if err != nil {
		return nil, err
	}

	var removed []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)

		for _, fileID := range input.FileIDsToDelete {
			pf, err := posts.GetFileInPost(fileID, post.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := posts.DeleteFile(pf.ID); err != nil {
				return err
			}
			removed = append(removed, pf.File)
		}

		if input.Title != nil {
			if *input.Title == "" {
				return models.NewValidationError().Add("title", "Заголовок обязателен")
			}
			post.Title = *input.Title
		}
		if input.Content != nil {
			post.Content = *input.Content
		}
		if input.Deadline != nil {
			deadline, err := parseDeadline(*input.Deadline)
			if err != nil {
				return err
			}
			post.Deadline = deadline
		}
		if err := posts.Update(post); err != nil {
			return err
		}
		return s.attachFiles(posts, post.ID, input.Files)
	})
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	for _, path := range removed {
		s.storage.Remove(path)
	}
	return s.posts.GetByID(post.ID)
}

// DeletePost удаляет пост вместе с файлами, комментариями и напоминаниями
func (s *postService) DeletePost(groupID, postID uuid.UUID, actor *models.User) error {
	g, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if g.AdminID != actor.ID {
		return fmt.Errorf("%w: Удалять пост может только админ", models.ErrForbidden)
	}
	post, err := s.GetPost(groupID, postID)
	if err != nil {
		return err
	}

	var removed []models.PostFile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		notifs := s.notifs.WithTx(tx)

		ids := []uuid.UUID{post.ID}
		removed, err = posts.ListFilesByPosts(ids)
		if err != nil {
			return err
		}
		if err := posts.DeleteCommentsByPosts(ids); err != nil {
			return err
		}
		if err := posts.DeleteFilesByPosts(ids); err != nil {
			return err
		}
		if err := notifs.DeleteByPosts(ids); err != nil {
			return err
		}
		return posts.DeleteByIDs(ids)
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	for _, f := range removed {
		s.storage.Remove(f.File)
	}
	return nil
}

// AddComment добавляет комментарий к посту, опционально как ответ.
// Принадлежность parent тому же посту не проверяется — поведение
// сохранено как в исходной системе.
func (s *postService) AddComment(groupID, postID uuid.UUID, actor *models.User, text string, parentID *uuid.UUID) (*models.Comment, error) {
	post, err := s.GetPost(groupID, postID)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, models.NewValidationError().Add("text", "Текст комментария обязателен")
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		PostID:    post.ID,
		AuthorID:  actor.ID,
		Text:      text,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}
	if err := s.posts.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return s.posts.GetCommentInPost(comment.ID, post.ID)
}

// DeleteComment удаляет комментарий и все его ответы.
// Право на удаление есть у админа группы и у автора комментария.
func (s *postService) DeleteComment(groupID, postID, commentID uuid.UUID, actor *models.User) error {
	g, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	post, err := s.GetPost(groupID, postID)
	if err != nil {
		return err
	}
	comment, err := s.posts.GetCommentInPost(commentID, post.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: комментарий не найден", models.ErrNotFound)
		}
		return err
	}
	if actor.ID != g.AdminID && actor.ID != comment.AuthorID {
		return fmt.Errorf("%w: Нет прав на удаление", models.ErrForbidden)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		ids, err := collectCommentTree(posts, comment.ID)
		if err != nil {
			return err
		}
		return posts.DeleteComments(ids)
	})
}

// collectCommentTree собирает id комментария и всех его ответов вглубь
func collectCommentTree(posts repository.PostRepository, rootID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{rootID}
	queue := []uuid.UUID{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		replies, err := posts.ListReplies(current)
		if err != nil {
			return nil, err
		}
		for _, reply := range replies {
			ids = append(ids, reply.ID)
			queue = append(queue, reply.ID)
		}
	}
	return ids, nil
}
