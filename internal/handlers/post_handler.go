package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/services"
)

// PostHandler обрабатывает запросы к постам, файлам и комментариям
type PostHandler struct {
	svc services.PostService
}

// NewPostHandler создает новый обработчик постов
func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CommentRequest представляет запрос добавления комментария
type CommentRequest struct {
	Text   string     `json:"text" binding:"required"`
	Parent *uuid.UUID `json:"parent"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// ListPosts возвращает посты группы от новых к старым
func (h *PostHandler) ListPosts(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	posts, err := h.svc.ListPosts(groupID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, newPostResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePost создает пост. Тело запроса — JSON либо multipart/form-data
// с повторяемым полем files.
func (h *PostHandler) CreatePost(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	var input services.CreatePostInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Title = formValue(form.Value, "title")
		input.Content = formValue(form.Value, "content")
		input.Deadline = formValue(form.Value, "deadline")
		input.Files = form.File["files"]
	} else {
		var req struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			Deadline string `json:"deadline"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErr(c, bindingErrors(err))
			return
		}
		input.Title = req.Title
		input.Content = req.Content
		input.Deadline = req.Deadline
	}

	post, err := h.svc.CreatePost(groupID, currentUser(c), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// GetPost возвращает один пост группы
func (h *PostHandler) GetPost(c *gin.Context) {
	groupID, postID, ok := postPath(c)
	if !ok {
		return
	}
	post, err := h.svc.GetPost(groupID, postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// UpdatePost частично обновляет пост: удаляет перечисленные файлы,
// меняет поля, прикрепляет новые файлы
func (h *PostHandler) UpdatePost(c *gin.Context) {
	groupID, postID, ok := postPath(c)
	if !ok {
		return
	}

	var input services.UpdatePostInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Поля приходят массивами; скалярные значения берем первым элементом
		input.Title = formValuePtr(form.Value, "title")
		input.Content = formValuePtr(form.Value, "content")
		input.Deadline = formValuePtr(form.Value, "deadline")
		input.FileIDsToDelete = parseFileIDs(form.Value["file_ids_to_delete"])
		input.Files = form.File["files"]
	} else {
		var req struct {
			Title           *string  `json:"title"`
			Content         *string  `json:"content"`
			Deadline        *string  `json:"deadline"`
			FileIDsToDelete []string `json:"file_ids_to_delete"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErr(c, bindingErrors(err))
			return
		}
		input.Title = req.Title
		input.Content = req.Content
		input.Deadline = req.Deadline
		for _, raw := range req.FileIDsToDelete {
			if id, err := uuid.Parse(raw); err == nil {
				input.FileIDsToDelete = append(input.FileIDsToDelete, id)
			}
		}
	}

	post, err := h.svc.UpdatePost(groupID, postID, currentUser(c), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost удаляет пост
func (h *PostHandler) DeletePost(c *gin.Context) {
	groupID, postID, ok := postPath(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePost(groupID, postID, currentUser(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddComment добавляет комментарий к посту
func (h *PostHandler) AddComment(c *gin.Context) {
	groupID, postID, ok := postPath(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	comment, err := h.svc.AddComment(groupID, postID, currentUser(c), req.Text, req.Parent)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// DeleteComment удаляет комментарий вместе с ответами
func (h *PostHandler) DeleteComment(c *gin.Context) {
	groupID, postID, ok := postPath(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	if err := h.svc.DeleteComment(groupID, postID, commentID, currentUser(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func postPath(c *gin.Context) (groupID, postID uuid.UUID, ok bool) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return uuid.Nil, uuid.Nil, false
	}
	postID, err = uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return uuid.Nil, uuid.Nil, false
	}
	return groupID, postID, true
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func formValuePtr(values map[string][]string, key string) *string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return &v[0]
	}
	return nil
}

// parseFileIDs разбирает file_ids_to_delete: каждое значение — JSON-массив
// строк, JSON-строка или сырой id. Нечитаемые значения молча пропускаются.
func parseFileIDs(values []string) []uuid.UUID {
	var ids []uuid.UUID
	appendID := func(raw string) {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	for _, value := range values {
		var list []string
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			for _, raw := range list {
				appendID(raw)
			}
			continue
		}
		var single string
		if err := json.Unmarshal([]byte(value), &single); err == nil {
			appendID(single)
			continue
		}
		appendID(value)
	}
	return ids
}
