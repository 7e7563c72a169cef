package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ArAversi0/TaskTalk/internal/models"
)

// newNotifSvc собирает сервис уведомлений с подмененными часами
func newNotifSvc(e *env, now time.Time) *notificationService {
	return &notificationService{
		db:     e.db,
		notifs: e.notifs,
		posts:  e.posts,
		groups: e.groups,
		now:    func() time.Time { return now },
	}
}

func TestRemindersGeneratedOncePerStudent(t *testing.T) {
	e := newEnv(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newNotifSvc(e, now)

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	if err := e.groups.AddStudent(g, student); err != nil {
		t.Fatalf("add student: %v", err)
	}

	// дедлайн завтра — напоминание нужно; дедлайн через три дня — рано
	e.makePost(t, g, admin, "Срочное ДЗ", "2026-03-11")
	e.makePost(t, g, admin, "Нескорое ДЗ", "2026-03-13")

	for i := 0; i < 3; i++ {
		if _, err := svc.ListForUser(student.ID); err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
	}

	notifs, err := e.notifs.ListByUser(student.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if assert.Len(t, notifs, 1) {
		n := notifs[0]
		assert.Equal(t, models.NotificationTypeReminder, n.Type)
		assert.Equal(t, "2026-03-11", n.DeadlineDate.String())
		assert.Contains(t, n.Message, "Срочное ДЗ")
	}

	// напоминания адресованы студентам, не преподавателям
	adminNotifs, err := svc.ListForUser(admin.ID)
	assert.NoError(t, err)
	assert.Empty(t, adminNotifs)
}

func TestReminderForPassedDeadline(t *testing.T) {
	e := newEnv(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newNotifSvc(e, now)

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")
	if err := e.groups.AddStudent(g, student); err != nil {
		t.Fatalf("add student: %v", err)
	}
	e.makePost(t, g, admin, "Просроченное ДЗ", "2026-03-01")

	notifs, err := svc.ListForUser(student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assert.Len(t, notifs, 1)
}

func TestStaleNotificationsSwept(t *testing.T) {
	e := newEnv(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newNotifSvc(e, now)

	student := e.makeUser(t, "student@test.ru", models.RoleStudent)

	stale := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeInvite,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusDeclined,
		CreatedAt: now.Add(-8 * 24 * time.Hour),
	}
	fresh := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeInvite,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusDeclined,
		CreatedAt: now.Add(-6 * 24 * time.Hour),
	}
	pending := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeInvite,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: now.Add(-30 * 24 * time.Hour),
	}
	staleExclude := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeExclude,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: now.Add(-8 * 24 * time.Hour),
	}
	for _, n := range []*models.Notification{stale, fresh, pending, staleExclude} {
		if err := e.notifs.Create(n); err != nil {
			t.Fatalf("create notification: %v", err)
		}
	}

	notifs, err := svc.ListForUser(student.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	ids := make([]uuid.UUID, 0, len(notifs))
	for _, n := range notifs {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{fresh.ID, pending.ID}, ids)
}

func TestRespondToInviteAccept(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")

	invite, err := e.groupSvc.InviteMember(g.ID, admin, student.Email)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	accepted, err := svc.RespondToInvite(invite.ID, student, "accept")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	assert.Equal(t, models.NotificationStatusAccepted, accepted.Status)

	reloaded, err := e.groupSvc.GetGroup(g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	assert.True(t, reloaded.HasStudent(student.ID))

	// повторный ответ на обработанное приглашение — конфликт
	_, err = svc.RespondToInvite(invite.ID, student, "accept")
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRespondToInviteAcceptTeacher(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	teacher := e.makeUser(t, "teacher@test.ru", models.RoleTeacher)
	g := e.makeGroup(t, admin, "Группа 101")

	invite, err := e.groupSvc.InviteMember(g.ID, admin, teacher.Email)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := svc.RespondToInvite(invite.ID, teacher, "accept"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	reloaded, err := e.groupSvc.GetGroup(g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	assert.True(t, reloaded.HasTeacher(teacher.ID))
	assert.False(t, reloaded.HasStudent(teacher.ID))
}

func TestRespondToInviteAcceptWhenAlreadyMember(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")

	invite, err := e.groupSvc.InviteMember(g.ID, admin, student.Email)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := e.groups.AddStudent(g, student); err != nil {
		t.Fatalf("add student: %v", err)
	}

	if _, err := svc.RespondToInvite(invite.ID, student, "accept"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	reloaded, err := e.groupSvc.GetGroup(g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	assert.Len(t, reloaded.Students, 1)
}

func TestRespondToInviteErrors(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	admin := e.makeUser(t, "admin@test.ru", models.RoleTeacher)
	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	stranger := e.makeUser(t, "stranger@test.ru", models.RoleStudent)
	g := e.makeGroup(t, admin, "Группа 101")

	invite, err := e.groupSvc.InviteMember(g.ID, admin, student.Email)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	// чужое приглашение выглядит как несуществующее
	_, err = svc.RespondToInvite(invite.ID, stranger, "accept")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.RespondToInvite(uuid.New(), student, "accept")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.RespondToInvite(invite.ID, student, "postpone")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestMarkAllViewedSkipsInvites(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	student := e.makeUser(t, "student@test.ru", models.RoleStudent)

	invite := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeInvite,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}
	reminder := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeReminder,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}
	for _, n := range []*models.Notification{invite, reminder} {
		if err := e.notifs.Create(n); err != nil {
			t.Fatalf("create notification: %v", err)
		}
	}

	if err := svc.MarkAllViewed(student.ID); err != nil {
		t.Fatalf("mark viewed: %v", err)
	}

	reloadedInvite, _ := e.notifs.GetByID(invite.ID)
	reloadedReminder, _ := e.notifs.GetByID(reminder.ID)
	assert.Equal(t, models.NotificationStatusPending, reloadedInvite.Status)
	assert.Equal(t, models.NotificationStatusViewed, reloadedReminder.Status)
}

func TestDeleteNotificationOwnerOnly(t *testing.T) {
	e := newEnv(t)
	svc := newNotifSvc(e, time.Now())

	student := e.makeUser(t, "student@test.ru", models.RoleStudent)
	stranger := e.makeUser(t, "stranger@test.ru", models.RoleStudent)

	n := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeReminder,
		ToUserID:  student.ID,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}
	if err := e.notifs.Create(n); err != nil {
		t.Fatalf("create notification: %v", err)
	}

	assert.ErrorIs(t, svc.DeleteNotification(n.ID, stranger), models.ErrForbidden)

	if err := svc.DeleteNotification(n.ID, student); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assert.Zero(t, e.count(t, &models.Notification{}))
}
