package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreatePostAdminOnly(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	if err := e.groups.AddStudent(g, student); err != nil {
		t.Fatalf("add student: %v", err)
	}

	_, err := e.postSvc.CreatePost(g.ID, student, CreatePostInput{Title: "ДЗ"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	post, err := e.postSvc.CreatePost(g.ID, admin, CreatePostInput{
		Title:    "ДЗ 1",
		Content:  "Прочитать главу 3",
		Deadline: "2026-04-01",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	assert.Equal(t, "ДЗ 1", post.Title)
	assert.Equal(t, admin.ID, post.AuthorID)
	if assert.NotNil(t, post.Deadline) {
		assert.Equal(t, "2026-04-01", post.Deadline.String())
	}
}

func TestCreatePostValidation(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	g := e.makeGroup(t, admin, "Группа 101")

	var verr *models.ValidationError

	_, err := e.postSvc.CreatePost(g.ID, admin, CreatePostInput{Title: ""})
	assert.ErrorAs(t, err, &verr)

	_, err = e.postSvc.CreatePost(g.ID, admin, CreatePostInput{Title: "ДЗ", Deadline: "01.04.2026"})
	assert.ErrorAs(t, err, &verr)

	_, err = e.postSvc.CreatePost(uuid.New(), admin, CreatePostInput{Title: "ДЗ"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdatePostPartial(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	g := e.makeGroup(t, admin, "Группа 101")
	post := e.makePost(t, g, admin, "ДЗ 1", "2026-04-01")

	updated, err := e.postSvc.UpdatePost(g.ID, post.ID, admin, UpdatePostInput{
		Content: strPtr("Новое условие"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assert.Equal(t, "ДЗ 1", updated.Title)
	assert.Equal(t, "Новое условие", updated.Content)
	assert.NotNil(t, updated.Deadline)

	// пустая строка снимает дедлайн
	updated, err = e.postSvc.UpdatePost(g.ID, post.ID, admin, UpdatePostInput{
		Deadline: strPtr(""),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assert.Nil(t, updated.Deadline)
}

func TestUpdatePostIgnoresUnknownFileIDs(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	g := e.makeGroup(t, admin, "Группа 101")
	post := e.makePost(t, g, admin, "ДЗ 1", "")

	pf := &models.PostFile{ID: uuid.New(), PostID: post.ID, File: "post_files/x/a.pdf", UploadedAt: time.Now()}
	if err := e.posts.CreateFile(pf); err != nil {
		t.Fatalf("create file: %v", err)
	}

	updated, err := e.postSvc.UpdatePost(g.ID, post.ID, admin, UpdatePostInput{
		FileIDsToDelete: []uuid.UUID{pf.ID, uuid.New()},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assert.Empty(t, updated.Files)
	assert.Equal(t, []string{"post_files/x/a.pdf"}, e.storage.removed)
}

func TestDeletePostCascades(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	if err := e.groups.AddStudent(g, student); err != nil {
		t.Fatalf("add student: %v", err)
	}
	post := e.makePost(t, g, admin, "ДЗ 1", "")

	if _, err := e.postSvc.AddComment(g.ID, post.ID, student, "вопрос", nil); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	pf := &models.PostFile{ID: uuid.New(), PostID: post.ID, File: "post_files/x/a.pdf", UploadedAt: time.Now()}
	if err := e.posts.CreateFile(pf); err != nil {
		t.Fatalf("create file: %v", err)
	}
	if err := e.notifs.Create(&models.Notification{
		Type:      models.NotificationTypeReminder,
		ToUserID:  student.ID,
		PostID:    &post.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("create notification: %v", err)
	}

	assert.ErrorIs(t, e.postSvc.DeletePost(g.ID, post.ID, student), models.ErrForbidden)

	if err := e.postSvc.DeletePost(g.ID, post.ID, admin); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	assert.Zero(t, e.count(t, &models.Post{}))
	assert.Zero(t, e.count(t, &models.PostFile{}))
	assert.Zero(t, e.count(t, &models.Comment{}))
	assert.Zero(t, e.count(t, &models.Notification{}))
	assert.Equal(t, []string{"post_files/x/a.pdf"}, e.storage.removed)
}

func TestAddComment(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	post := e.makePost(t, g, admin, "ДЗ 1", "")

	var verr *models.ValidationError
	_, err := e.postSvc.AddComment(g.ID, post.ID, student, "", nil)
	assert.ErrorAs(t, err, &verr)

	root, err := e.postSvc.AddComment(g.ID, post.ID, student, "вопрос", nil)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	reply, err := e.postSvc.AddComment(g.ID, post.ID, admin, "ответ", &root.ID)
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}
	assert.Equal(t, root.ID, *reply.ParentID)
	assert.Equal(t, admin.ID, reply.Author.ID)
}

func TestDeleteCommentCascadesToReplies(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	post := e.makePost(t, g, admin, "ДЗ 1", "")

	root, _ := e.postSvc.AddComment(g.ID, post.ID, student, "вопрос", nil)
	reply, _ := e.postSvc.AddComment(g.ID, post.ID, admin, "ответ", &root.ID)
	if _, err := e.postSvc.AddComment(g.ID, post.ID, student, "уточнение", &reply.ID); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	other, _ := e.postSvc.AddComment(g.ID, post.ID, student, "отдельная ветка", nil)

	// автор может удалить свой комментарий вместе со всей веткой ответов
	if err := e.postSvc.DeleteComment(g.ID, post.ID, root.ID, student); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	assert.EqualValues(t, 1, e.count(t, &models.Comment{}))
	left, err := e.posts.GetCommentInPost(other.ID, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "отдельная ветка", left.Text)
}

func TestDeleteCommentPermissions(t *testing.T) {
	e := newEnv(t)
	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	author := e.makeUser(t, "author@test.ru", models.RoleStudent)
	stranger := e.makeUser(t, "stranger@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	post := e.makePost(t, g, admin, "ДЗ 1", "")

	comment, err := e.postSvc.AddComment(g.ID, post.ID, author, "вопрос", nil)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}

	assert.ErrorIs(t, e.postSvc.DeleteComment(g.ID, post.ID, comment.ID, stranger), models.ErrForbidden)

	// админ группы может удалять чужие комментарии
	if err := e.postSvc.DeleteComment(g.ID, post.ID, comment.ID, admin); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	assert.Zero(t, e.count(t, &models.Comment{}))
}
