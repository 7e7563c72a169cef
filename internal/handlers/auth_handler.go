package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/internal/services"
)

// AuthHandler обрабатывает регистрацию, вход и профили пользователей
type AuthHandler struct {
	authService  *services.AuthService
	groupService services.GroupService
}

// NewAuthHandler создает новый обработчик авторизации
func NewAuthHandler(authService *services.AuthService, groupService services.GroupService) *AuthHandler {
	return &AuthHandler{authService: authService, groupService: groupService}
}

// RegisterRequest представляет запрос регистрации
type RegisterRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	MiddleName string `json:"middle_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Password2  string `json:"password2" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// LoginRequest представляет запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest частичное обновление профиля
type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	Email      *string `json:"email"`
	About      *string `json:"about"`
}

// Register регистрирует нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Email:      req.Email,
		Password:   req.Password,
		Password2:  req.Password2,
		Role:       models.UserRole(req.Role),
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": result.Token,
		"user":  newProfileResponse(result.User, nil),
	})
}

// Login авторизует пользователя
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMessage(err, models.ErrInvalidArgument)})
			return
		}
		respondErr(c, err)
		return
	}

	groups, err := h.groupService.ListMyGroups(result.User.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  newProfileResponse(result.User, groups),
	})
}

// Logout завершает сессию. Токен при этом просто выбрасывается клиентом.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
}

// GetProfile возвращает профиль текущего пользователя
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := currentUser(c)
	groups, err := h.groupService.ListMyGroups(user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user, groups))
}

// UpdateProfile частично обновляет профиль текущего пользователя
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, services.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Email:      req.Email,
		About:      req.About,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	groups, err := h.groupService.ListMyGroups(updated.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(updated, groups))
}

// PublicProfile возвращает профиль любого пользователя по id
func (h *AuthHandler) PublicProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	groups, err := h.groupService.ListMyGroups(user.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user, groups))
}
