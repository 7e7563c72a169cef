package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// respondErr переводит ошибку бизнес-логики в HTTP-ответ
func respondErr(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": errMessage(err, models.ErrForbidden)})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errMessage(err, models.ErrNotFound)})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errMessage(err, models.ErrConflict)})
	case errors.Is(err, models.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err, models.ErrInvalidArgument)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// errMessage убирает служебный префикс ошибки-маркера из сообщения
func errMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		return trimmed
	}
	return msg
}

// bindingErrors переводит ошибки привязки запроса в ValidationError
func bindingErrors(err error) *models.ValidationError {
	verr := models.NewValidationError()
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				verr.Add(field, "Это поле обязательно")
			case "email":
				verr.Add(field, "Некорректный email")
			default:
				verr.Add(field, "Некорректное значение")
			}
		}
		return verr
	}
	return verr.Add("non_field_errors", err.Error())
}
