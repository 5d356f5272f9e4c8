package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamup/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.TeamNeed{},
		&models.TeamApplication{},
		&models.Notification{},
	))
	return db
}

func seedNeed(t *testing.T, repo NeedRepository, mutate func(*models.TeamNeed)) *models.TeamNeed {
	t.Helper()
	need := &models.TeamNeed{
		OwnerUserID:  "owner-1",
		OwnerEmail:   "owner@x.io",
		OwnerName:    "Owner",
		Title:        "Building a study planner",
		ProjectTrack: models.TrackWeb,
		ProjectStage: models.StageIdea,
		Brief:        "We want to build a planner for exam prep.",
		RolesNeeded:  []string{"backend", "designer"},
		IsOpen:       true,
	}
	if mutate != nil {
		mutate(need)
	}
	require.NoError(t, repo.Create(context.Background(), need))
	return need
}

func TestNeedRepositoryCreateAndGet(t *testing.T) {
	repo := NewNeedRepository(testDB(t))
	ctx := context.Background()

	need := seedNeed(t, repo, nil)
	require.NotZero(t, need.ID)

	got, err := repo.GetByID(ctx, need.ID)
	require.NoError(t, err)
	assert.Equal(t, "Building a study planner", got.Title)
	assert.Equal(t, []string{"backend", "designer"}, got.RolesNeeded)
	assert.True(t, got.IsOpen)
	assert.Zero(t, got.ViewCount)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNeedRepositoryListFilters(t *testing.T) {
	repo := NewNeedRepository(testDB(t))
	ctx := context.Background()

	web := seedNeed(t, repo, nil)
	ai := seedNeed(t, repo, func(n *models.TeamNeed) {
		n.Title = "LLM flashcard tutor"
		n.ProjectTrack = models.TrackAI
		n.ProjectStage = models.StagePrototype
		n.RolesNeeded = []string{"ml-engineer"}
	})
	seedNeed(t, repo, func(n *models.TeamNeed) {
		n.Title = "Hidden draft"
		n.IsHidden = true
	})
	closed := seedNeed(t, repo, func(n *models.TeamNeed) {
		n.Title = "Finished project"
		n.IsOpen = false
	})

	t.Run("hidden needs are excluded by default", func(t *testing.T) {
		needs, total, err := repo.List(ctx, NeedFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, n := range needs {
			assert.False(t, n.IsHidden)
		}
	})

	t.Run("by track", func(t *testing.T) {
		needs, total, err := repo.List(ctx, NeedFilter{Track: models.TrackAI})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, needs, 1)
		assert.Equal(t, ai.ID, needs[0].ID)
	})

	t.Run("by role", func(t *testing.T) {
		needs, _, err := repo.List(ctx, NeedFilter{Role: "designer"})
		require.NoError(t, err)
		require.Len(t, needs, 1)
		assert.Equal(t, web.ID, needs[0].ID)
	})

	t.Run("open only", func(t *testing.T) {
		open := true
		needs, _, err := repo.List(ctx, NeedFilter{IsOpen: &open})
		require.NoError(t, err)
		for _, n := range needs {
			assert.NotEqual(t, closed.ID, n.ID)
		}
	})

	t.Run("search matches title and brief", func(t *testing.T) {
		needs, _, err := repo.List(ctx, NeedFilter{Search: "flashcard"})
		require.NoError(t, err)
		require.Len(t, needs, 1)
		assert.Equal(t, ai.ID, needs[0].ID)

		needs, _, err = repo.List(ctx, NeedFilter{Search: "exam prep"})
		require.NoError(t, err)
		require.Len(t, needs, 1)
		assert.Equal(t, web.ID, needs[0].ID)
	})

	t.Run("include hidden for moderation", func(t *testing.T) {
		_, total, err := repo.List(ctx, NeedFilter{IncludeHidden: true})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
	})
}

func TestNeedRepositoryListSortPopular(t *testing.T) {
	repo := NewNeedRepository(testDB(t))
	ctx := context.Background()

	quiet := seedNeed(t, repo, nil)
	busy := seedNeed(t, repo, func(n *models.TeamNeed) { n.Title = "Busy post" })

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViewCount(ctx, busy.ID))
	}
	require.NoError(t, repo.IncrementViewCount(ctx, quiet.ID))

	needs, _, err := repo.List(ctx, NeedFilter{Sort: "popular"})
	require.NoError(t, err)
	require.Len(t, needs, 2)
	assert.Equal(t, busy.ID, needs[0].ID)
	assert.Equal(t, 3, needs[0].ViewCount)
}

func TestNeedRepositoryIncrements(t *testing.T) {
	repo := NewNeedRepository(testDB(t))
	ctx := context.Background()

	need := seedNeed(t, repo, nil)

	require.NoError(t, repo.IncrementViewCount(ctx, need.ID))
	require.NoError(t, repo.IncrementApplicationCount(ctx, need.ID))
	require.NoError(t, repo.IncrementApplicationCount(ctx, need.ID))

	got, err := repo.GetByID(ctx, need.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	assert.Equal(t, 2, got.ApplicationCount)

	assert.ErrorIs(t, repo.IncrementViewCount(ctx, 9999), ErrNotFound)
	assert.ErrorIs(t, repo.IncrementApplicationCount(ctx, 9999), ErrNotFound)
}

func TestNeedRepositoryDelete(t *testing.T) {
	repo := NewNeedRepository(testDB(t))
	ctx := context.Background()

	need := seedNeed(t, repo, nil)

	require.NoError(t, repo.Delete(ctx, need.ID))
	_, err := repo.GetByID(ctx, need.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, need.ID), ErrNotFound)
}

func TestNeedRepositoryGetWithApplications(t *testing.T) {
	db := testDB(t)
	needs := NewNeedRepository(db)
	apps := NewApplicationRepository(db)
	ctx := context.Background()

	need := seedNeed(t, needs, nil)
	for _, user := range []string{"u2", "u3"} {
		require.NoError(t, apps.Create(ctx, &models.TeamApplication{
			TeamNeedID:      need.ID,
			ApplicantUserID: user,
			ApplicantEmail:  user + "@x.io",
			Message:         "I would love to join this team.",
			ContactForOwner: "slack: " + user,
		}))
	}

	got, err := needs.GetWithApplications(ctx, need.ID)
	require.NoError(t, err)
	assert.Len(t, got.Applications, 2)
}

func TestClampPage(t *testing.T) {
	limit, offset := ClampPage(0, -5)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ClampPage(500, 0)
	assert.Equal(t, MaxPageSize, limit)

	limit, offset = ClampPage(10, 30)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 30, offset)
}
