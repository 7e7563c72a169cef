package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

func newAuthEnv(t *testing.T) (*env, *AuthService) {
	t.Helper()
	e := newEnv(t)
	return e, NewAuthService(e.users, "test-secret", time.Hour)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:  "Иван",
		LastName:   "Иванов",
		MiddleName: "Иванович",
		Email:      "ivanov@test.ru",
		Password:   "secret123",
		Password2:  "secret123",
		Role:       models.RoleStudent,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthEnv(t)

	result, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "secret123", result.User.Password)

	logged, err := svc.Login("ivanov@test.ru", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	assert.Equal(t, result.User.ID, logged.User.ID)

	_, err = svc.Login("ivanov@test.ru", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.Login("nobody@test.ru", "secret123")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestRegisterValidationAccumulates(t *testing.T) {
	_, svc := newAuthEnv(t)

	if _, err := svc.Register(validRegisterInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	input := validRegisterInput() // email уже занят
	input.Password2 = "another"
	input.Role = "director"

	_, err := svc.Register(input)
	var verr *models.ValidationError
	if !assert.ErrorAs(t, err, &verr) {
		return
	}
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "role")
	assert.Contains(t, verr.Fields, "email")
}

func TestValidateToken(t *testing.T) {
	_, svc := newAuthEnv(t)

	result, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	assert.Equal(t, result.User.ID, user.ID)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// токен, подписанный другим секретом, не принимается
	otherSvc := NewAuthService(svc.userRepo, "other-secret", time.Hour)
	foreign, err := otherSvc.generateJWT(result.User)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	_, svc := newAuthEnv(t)

	result, err := svc.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	second := validRegisterInput()
	second.Email = "petrov@test.ru"
	if _, err := svc.Register(second); err != nil {
		t.Fatalf("register second: %v", err)
	}

	about := "Студент второго курса"
	updated, err := svc.UpdateProfile(result.User.ID, UpdateProfileInput{About: &about})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assert.Equal(t, about, updated.About)
	assert.Equal(t, "Иван", updated.FirstName)

	// занятый email отклоняется
	taken := "petrov@test.ru"
	_, err = svc.UpdateProfile(result.User.ID, UpdateProfileInput{Email: &taken})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUserNames(t *testing.T) {
	u := models.User{FirstName: "Иван", LastName: "Иванов", MiddleName: "Петрович"}
	assert.Equal(t, "Иванов Иван Петрович", u.FullName())
	assert.Equal(t, "Иванов И.П.", u.ShortName())

	noMiddle := models.User{FirstName: "Иван", LastName: "Иванов"}
	assert.Equal(t, "Иванов Иван", noMiddle.FullName())
	assert.Equal(t, "Иванов И.", noMiddle.ShortName())
}
