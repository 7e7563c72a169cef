package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/services"
)

// GroupHandler обрабатывает запросы к группам
type GroupHandler struct {
	svc services.GroupService
}

// NewGroupHandler создает новый обработчик групп
func NewGroupHandler(svc services.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// CreateGroupRequest представляет запрос создания группы
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
	Info string `json:"info"`
}

// InviteRequest представляет запрос приглашения по email
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ExcludeRequest представляет запрос исключения участника
type ExcludeRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// MyGroups возвращает группы текущего пользователя
func (h *GroupHandler) MyGroups(c *gin.Context) {
	user := currentUser(c)
	groups, err := h.svc.ListMyGroups(user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, newGroupResponse(g))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGroup создает группу; создатель становится админом
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	g, err := h.svc.CreateGroup(currentUser(c), req.Name, req.Info)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(g))
}

// DeleteGroup удаляет группу со всем содержимым
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	if err := h.svc.DeleteGroup(groupID, currentUser(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Invite приглашает пользователя в группу по email
func (h *GroupHandler) Invite(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	notif, err := h.svc.InviteMember(groupID, currentUser(c), req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newNotificationResponse(notif))
}

// Exclude исключает участника из группы
func (h *GroupHandler) Exclude(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	var req ExcludeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	if err := h.svc.ExcludeMember(groupID, currentUser(c), req.UserID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Leave выводит текущего пользователя из группы
func (h *GroupHandler) Leave(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}
	if err := h.svc.LeaveGroup(groupID, currentUser(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
