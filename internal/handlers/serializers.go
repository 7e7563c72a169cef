package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// Представления для ответов API. Состав полей повторяет контракт,
// на который завязан фронтенд.

type userGroupBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type profileResponse struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	FullName   string          `json:"fullName"`
	Role       models.UserRole `json:"role"`
	About      string          `json:"about"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	MiddleName string          `json:"middle_name"`
	Groups     []userGroupBrief `json:"groups"`
}

func newProfileResponse(user *models.User, groups []*models.Group) profileResponse {
	briefs := make([]userGroupBrief, 0, len(groups))
	for _, g := range groups {
		briefs = append(briefs, userGroupBrief{ID: g.ID, Name: g.Name, Role: groupRole(g, user.ID)})
	}
	return profileResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName(),
		Role:       user.Role,
		About:      user.About,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		MiddleName: user.MiddleName,
		Groups:     briefs,
	}
}

// groupRole определяет роль пользователя в группе
func groupRole(g *models.Group, userID uuid.UUID) string {
	switch {
	case g.AdminID == userID:
		return "admin"
	case g.HasTeacher(userID):
		return "teacher"
	case g.HasStudent(userID):
		return "student"
	}
	return ""
}

type memberResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type commentResponse struct {
	ID         uuid.UUID  `json:"id"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"created_at"`
	Author     uuid.UUID  `json:"author"`
	AuthorName string     `json:"author_name"`
	AuthorRole string     `json:"author_role"`
	Parent     *uuid.UUID `json:"parent"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	role := ""
	if c.Author.Role == models.RoleTeacher {
		role = "Преподаватель"
	}
	return commentResponse{
		ID:         c.ID,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
		Author:     c.AuthorID,
		AuthorName: c.Author.ShortName(),
		AuthorRole: role,
		Parent:     c.ParentID,
	}
}

type postResponse struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Deadline   *models.Date      `json:"deadline"`
	Author     uuid.UUID         `json:"author"`
	AuthorName string            `json:"author_name"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Files      []models.PostFile `json:"files"`
	Comments   []commentResponse `json:"comments"`
}

func newPostResponse(p *models.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, newCommentResponse(&p.Comments[i]))
	}
	files := p.Files
	if files == nil {
		files = []models.PostFile{}
	}
	return postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Deadline:   p.Deadline,
		Author:     p.AuthorID,
		AuthorName: p.Author.ShortName(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Files:      files,
		Comments:   comments,
	}
}

type groupResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Info      string           `json:"info"`
	Admin     string           `json:"admin"`
	AdminID   uuid.UUID        `json:"adminId"`
	Teachers  []string         `json:"teachers"`
	Students  []string         `json:"students"`
	Members   []memberResponse `json:"members"`
	Posts     []postResponse   `json:"posts"`
	CreatedAt time.Time        `json:"created_at"`
}

func newGroupResponse(g *models.Group) groupResponse {
	teachers := make([]string, 0, len(g.Teachers))
	for i := range g.Teachers {
		teachers = append(teachers, g.Teachers[i].Email)
	}
	students := make([]string, 0, len(g.Students))
	for i := range g.Students {
		students = append(students, g.Students[i].Email)
	}

	// Админ идет первым, затем преподаватели без него, затем студенты
	members := []memberResponse{{ID: g.Admin.ID, Name: g.Admin.ShortName(), Role: "admin"}}
	for i := range g.Teachers {
		if g.Teachers[i].ID == g.AdminID {
			continue
		}
		members = append(members, memberResponse{ID: g.Teachers[i].ID, Name: g.Teachers[i].ShortName(), Role: "teacher"})
	}
	for i := range g.Students {
		members = append(members, memberResponse{ID: g.Students[i].ID, Name: g.Students[i].ShortName(), Role: "student"})
	}

	posts := make([]postResponse, 0, len(g.Posts))
	for i := range g.Posts {
		posts = append(posts, newPostResponse(&g.Posts[i]))
	}

	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Info:      g.Info,
		Admin:     g.Admin.Email,
		AdminID:   g.AdminID,
		Teachers:  teachers,
		Students:  students,
		Members:   members,
		Posts:     posts,
		CreatedAt: g.CreatedAt,
	}
}

type notificationResponse struct {
	ID           uuid.UUID                 `json:"id"`
	Type         models.NotificationType   `json:"notif_type"`
	ToUser       uuid.UUID                 `json:"to_user"`
	FromUser     *uuid.UUID                `json:"from_user"`
	FromUserName *string                   `json:"from_user_name"`
	Group        *uuid.UUID                `json:"group"`
	GroupName    *string                   `json:"group_name"`
	Post         *uuid.UUID                `json:"post"`
	PostTitle    *string                   `json:"post_title"`
	DeadlineDate *models.Date              `json:"deadline_date"`
	CurrentDate  models.Date               `json:"current_date"`
	Status       models.NotificationStatus `json:"status"`
	CreatedAt    time.Time                 `json:"created_at"`
	Message      string                    `json:"message"`
}

func newNotificationResponse(n *models.Notification) notificationResponse {
	resp := notificationResponse{
		ID:           n.ID,
		Type:         n.Type,
		ToUser:       n.ToUserID,
		FromUser:     n.FromUserID,
		Group:        n.GroupID,
		Post:         n.PostID,
		DeadlineDate: n.DeadlineDate,
		CurrentDate:  models.NewDate(time.Now()),
		Status:       n.Status,
		CreatedAt:    n.CreatedAt,
		Message:      n.Message,
	}
	if n.FromUser != nil {
		name := n.FromUser.ShortName()
		resp.FromUserName = &name
	}
	if n.Group != nil {
		resp.GroupName = &n.Group.Name
	}
	if n.Post != nil {
		resp.PostTitle = &n.Post.Title
	}
	return resp
}
