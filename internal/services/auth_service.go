package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ArAversi0/TaskTalk/internal/models"
	"github.com/ArAversi0/TaskTalk/internal/repository"
)

// AuthService представляет сервис регистрации и авторизации
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterInput данные регистрации нового пользователя
type RegisterInput struct {
	FirstName  string
	LastName   string
	MiddleName string
	Email      string
	Password   string
	Password2  string
	Role       models.UserRole
}

// AuthResult представляет результат авторизации
type AuthResult struct {
	User  *models.User
	Token string
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	verr := models.NewValidationError()
	if input.Password != input.Password2 {
		verr.Add("password", "Пароли не совпадают")
	}
	if !input.Role.Valid() {
		verr.Add("role", "Роль пользователя обязательна")
	}
	if taken, err := s.userRepo.EmailTaken(input.Email, uuid.Nil); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		verr.Add("email", "Пользователь с таким email уже существует")
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:         uuid.New(),
		Email:      input.Email,
		Password:   string(hash),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		MiddleName: input.MiddleName,
		Role:       input.Role,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login авторизует пользователя по email и паролю
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Неверный логин или пароль", models.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: Неверный логин или пароль", models.ErrInvalidArgument)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// UpdateProfileInput частичное обновление профиля; nil означает "не менять"
type UpdateProfileInput struct {
	FirstName  *string
	LastName   *string
	MiddleName *string
	Email      *string
	About      *string
}

// UpdateProfile обновляет профиль пользователя. Роль не редактируется.
func (s *AuthService) UpdateProfile(userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: пользователь не найден", models.ErrNotFound)
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(*input.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, models.NewValidationError().Add("email", "Пользователь с таким email уже существует")
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.MiddleName != nil {
		user.MiddleName = *input.MiddleName
	}
	if input.About != nil {
		user.About = *input.About
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// GetUser получает пользователя по ID
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: пользователь не найден", models.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken валидирует JWT токен и возвращает пользователя
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return user, nil
}

// generateJWT генерирует JWT токен для пользователя
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtExpiration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
