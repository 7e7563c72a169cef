package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/services"
)

// NotificationHandler обрабатывает запросы к уведомлениям
type NotificationHandler struct {
	svc services.NotificationService
}

// NewNotificationHandler создает новый обработчик уведомлений
func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List возвращает уведомления текущего пользователя. Перед выдачей
// удаляются устаревшие записи и генерируются напоминания о дедлайнах.
func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)
	notifications, err := h.svc.ListForUser(user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, newNotificationResponse(n))
	}
	c.JSON(http.StatusOK, resp)
}

// MarkViewed помечает просмотренными все уведомления, кроме приглашений
func (h *NotificationHandler) MarkViewed(c *gin.Context) {
	if err := h.svc.MarkAllViewed(currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete удаляет уведомление текущего пользователя
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	if err := h.svc.DeleteNotification(id, currentUser(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// InvitationAction принимает или отклоняет приглашение в группу
func (h *NotificationHandler) InvitationAction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invitation id"})
		return
	}
	notif, err := h.svc.RespondToInvite(id, currentUser(c), c.Param("action"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": notif.Status})
}
