package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup/models"
	"teamup/repository"
)

type stubChannel struct {
	name  string
	err   error
	calls int
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(_ context.Context, _ *EmailMessage) error {
	s.calls++
	return s.err
}

type memNotifyRepo struct {
	mu    sync.Mutex
	items []models.Notification
	fail  bool
}

func (m *memNotifyRepo) Create(_ context.Context, n *models.Notification) error {
	if m.fail {
		return errors.New("store down")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifyRepo) GetByID(context.Context, uint) (*models.Notification, error) {
	return nil, repository.ErrNotFound
}

func (m *memNotifyRepo) ListByUser(context.Context, string, bool, int, int) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items, int64(len(m.items)), nil
}

func (m *memNotifyRepo) MarkRead(context.Context, uint) error      { return nil }
func (m *memNotifyRepo) MarkAllRead(context.Context, string) error { return nil }
func (m *memNotifyRepo) Delete(context.Context, uint) error        { return nil }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestDispatcherStopsAtFirstSuccess(t *testing.T) {
	first := &stubChannel{name: "smtp", err: errors.New("dial refused")}
	second := &stubChannel{name: "mail-api"}
	third := &stubChannel{name: "log"}

	d := NewDispatcher([]Channel{first, second, third}, &memNotifyRepo{}, testLogger(), "http://app", 4, time.Second)
	d.Deliver(context.Background(), Job{Email: &EmailMessage{To: "a@b.io", Subject: "s", HTML: "<p>x</p>"}})

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls, "chain stops at first success")
}

func TestDispatcherSurvivesAllChannelsFailing(t *testing.T) {
	failing := &stubChannel{name: "smtp", err: errors.New("down")}
	repo := &memNotifyRepo{}

	d := NewDispatcher([]Channel{failing}, repo, testLogger(), "http://app", 4, time.Second)
	d.Deliver(context.Background(), Job{
		Email: &EmailMessage{To: "a@b.io", Subject: "s", HTML: "x"},
		InApp: &models.Notification{UserID: "u1", Type: models.NotifySystem, Title: "t"},
	})

	// The email was lost but the in-app record still landed.
	assert.Len(t, repo.items, 1)
}

func TestDispatcherSurvivesStoreFailure(t *testing.T) {
	d := NewDispatcher([]Channel{&stubChannel{name: "log"}}, &memNotifyRepo{fail: true}, testLogger(), "http://app", 4, time.Second)

	assert.NotPanics(t, func() {
		d.Deliver(context.Background(), Job{InApp: &models.Notification{UserID: "u1", Type: models.NotifySystem, Title: "t"}})
	})
}

func TestDispatchEnqueues(t *testing.T) {
	d := NewDispatcher([]Channel{&stubChannel{name: "log"}}, &memNotifyRepo{}, testLogger(), "http://app", 4, time.Second)

	d.Dispatch(Job{Email: &EmailMessage{To: "a@b.io"}})

	select {
	case job := <-d.Jobs():
		require.NotNil(t, job.Email)
		assert.Equal(t, "a@b.io", job.Email.To)
	default:
		t.Fatal("expected a queued job")
	}
}

func TestLogChannelAlwaysSucceeds(t *testing.T) {
	ch := &LogChannel{Logger: testLogger()}
	assert.NoError(t, ch.Send(context.Background(), &EmailMessage{To: "whoever", Subject: "s"}))
}

func TestSMTPChannelRejectsMalformedRecipient(t *testing.T) {
	ch := &SMTPChannel{Host: "localhost", Port: 2525, FromEmail: "noreply@teamup.local", FromName: "Team-Up"}
	err := ch.Send(context.Background(), &EmailMessage{To: "not-an-email", Subject: "s", HTML: "x"})
	assert.Error(t, err)
}

func TestNeedCreatedComposesJob(t *testing.T) {
	repo := &memNotifyRepo{}
	d := NewDispatcher([]Channel{&stubChannel{name: "log"}}, repo, testLogger(), "http://app", 4, time.Second)

	need := &models.TeamNeed{
		OwnerUserID: "u1",
		OwnerEmail:  "owner@x.io",
		OwnerName:   "Owner",
		Title:       "Need a designer",
	}
	need.ID = 7
	d.NeedCreated(need)

	job := <-d.Jobs()
	require.NotNil(t, job.Email)
	assert.Equal(t, "owner@x.io", job.Email.To)
	assert.Contains(t, job.Email.HTML, "Need a designer")
	require.NotNil(t, job.InApp)
	assert.Equal(t, models.NotifySystem, job.InApp.Type)
	assert.Equal(t, uint(7), job.InApp.RelatedID)
	assert.Contains(t, job.InApp.ActionURL, "/needs/7")
}

func TestApplicationDecidedIncludesContactHintOnAccept(t *testing.T) {
	d := NewDispatcher([]Channel{&stubChannel{name: "log"}}, &memNotifyRepo{}, testLogger(), "http://app", 4, time.Second)

	need := &models.TeamNeed{Title: "Backend help", ContactHint: "kakao: team-room"}
	need.ID = 3
	app := &models.TeamApplication{
		ApplicantUserID: "u2",
		ApplicantEmail:  "b@x.io",
		ApplicantName:   "Bea",
		Status:          models.ApplicationAccepted,
	}

	d.ApplicationDecided(need, app)

	job := <-d.Jobs()
	require.NotNil(t, job.InApp)
	assert.Equal(t, models.NotifyApplyAccepted, job.InApp.Type)
	assert.Contains(t, job.InApp.Message, "kakao: team-room")
	require.NotNil(t, job.Email)
	assert.Contains(t, job.Email.HTML, "kakao: team-room")
}

func TestApplicationDecidedOmitsContactHintOnReject(t *testing.T) {
	d := NewDispatcher([]Channel{&stubChannel{name: "log"}}, &memNotifyRepo{}, testLogger(), "http://app", 4, time.Second)

	need := &models.TeamNeed{Title: "Backend help", ContactHint: "kakao: team-room"}
	app := &models.TeamApplication{
		ApplicantUserID: "u2",
		ApplicantEmail:  "b@x.io",
		Status:          models.ApplicationRejected,
	}

	d.ApplicationDecided(need, app)

	job := <-d.Jobs()
	require.NotNil(t, job.InApp)
	assert.Equal(t, models.NotifyApplyRejected, job.InApp.Type)
	assert.NotContains(t, job.InApp.Message, "kakao: team-room")
	assert.NotContains(t, job.Email.HTML, "kakao: team-room")
}
