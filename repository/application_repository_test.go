package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup/models"
)

func seedApplication(t *testing.T, repo ApplicationRepository, needID uint, userID string, mutate func(*models.TeamApplication)) *models.TeamApplication {
	t.Helper()
	app := &models.TeamApplication{
		TeamNeedID:      needID,
		ApplicantUserID: userID,
		ApplicantEmail:  userID + "@x.io",
		ApplicantName:   "Applicant " + userID,
		Message:         "I have shipped two side projects in this space.",
		ContactForOwner: "slack: " + userID,
		Roles:           []string{"backend"},
		Status:          models.ApplicationPending,
	}
	if mutate != nil {
		mutate(app)
	}
	require.NoError(t, repo.Create(context.Background(), app))
	return app
}

func TestApplicationRepositoryCreateAndGet(t *testing.T) {
	repo := NewApplicationRepository(testDB(t))
	ctx := context.Background()

	app := seedApplication(t, repo, 1, "u2", nil)

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, got.Status)
	assert.Equal(t, []string{"backend"}, got.Roles)
	assert.False(t, got.IsReadByOwner)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepositoryListByNeed(t *testing.T) {
	repo := NewApplicationRepository(testDB(t))
	ctx := context.Background()

	seedApplication(t, repo, 1, "u2", nil)
	seedApplication(t, repo, 1, "u3", nil)
	seedApplication(t, repo, 2, "u4", nil)

	apps, err := repo.ListByNeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestApplicationRepositoryListByApplicant(t *testing.T) {
	repo := NewApplicationRepository(testDB(t))
	ctx := context.Background()

	seedApplication(t, repo, 1, "u2", nil)
	seedApplication(t, repo, 2, "u2", func(a *models.TeamApplication) {
		a.Status = models.ApplicationWithdrawn
	})
	seedApplication(t, repo, 3, "u9", nil)

	apps, total, err := repo.ListByApplicant(ctx, "u2", "", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, apps, 2)

	apps, total, err = repo.ListByApplicant(ctx, "u2", models.ApplicationWithdrawn, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, apps, 1)
	assert.EqualValues(t, 2, apps[0].TeamNeedID)
}

func TestApplicationRepositoryHasActiveApplication(t *testing.T) {
	repo := NewApplicationRepository(testDB(t))
	ctx := context.Background()

	app := seedApplication(t, repo, 1, "u2", nil)

	active, err := repo.HasActiveApplication(ctx, 1, "u2")
	require.NoError(t, err)
	assert.True(t, active, "pending blocks a second application")

	app.Status = models.ApplicationAccepted
	require.NoError(t, repo.Save(ctx, app))
	active, err = repo.HasActiveApplication(ctx, 1, "u2")
	require.NoError(t, err)
	assert.True(t, active, "accepted blocks a second application")

	app.Status = models.ApplicationWithdrawn
	require.NoError(t, repo.Save(ctx, app))
	active, err = repo.HasActiveApplication(ctx, 1, "u2")
	require.NoError(t, err)
	assert.False(t, active, "withdrawn frees the user to re-apply")

	active, err = repo.HasActiveApplication(ctx, 1, "someone-else")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestApplicationRepositoryGetByNeedAndApplicantReturnsLatest(t *testing.T) {
	repo := NewApplicationRepository(testDB(t))
	ctx := context.Background()

	seedApplication(t, repo, 1, "u2", func(a *models.TeamApplication) {
		a.Status = models.ApplicationWithdrawn
	})
	second := seedApplication(t, repo, 1, "u2", nil)

	got, err := repo.GetByNeedAndApplicant(ctx, 1, "u2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, models.ApplicationPending, got.Status)

	_, err = repo.GetByNeedAndApplicant(ctx, 1, "stranger")
	assert.ErrorIs(t, err, ErrNotFound)
}
