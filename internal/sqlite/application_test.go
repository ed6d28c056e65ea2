package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/repository"
	"github.com/stretchr/testify/require"
)

func newApplication(id, familyID, childName string) *application.Application {
	now := time.Now().Truncate(time.Second)
	return &application.Application{
		ID:          id,
		FamilyID:    familyID,
		ChildName:   childName,
		DateOfBirth: "2019-03-14",
		Status:      application.StatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
}

func TestApplicationRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)

	repo := NewApplicationRepository(db)
	require.NoError(t, repo.Create(ctx, newApplication("a1", "fam1", "Ada Lovelace")))

	loaded, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "fam1", loaded.FamilyID)
	require.Equal(t, "Ada Lovelace", loaded.ChildName)
	require.Equal(t, application.StatusSubmitted, loaded.Status)
	require.Nil(t, loaded.InterviewDate)
}

func TestApplicationRepository_Get_NotFound(t *testing.T) {
	db := NewTestDB(t)

	repo := NewApplicationRepository(db)
	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_DuplicateChild(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)

	repo := NewApplicationRepository(db)
	require.NoError(t, repo.Create(ctx, newApplication("a1", "fam1", "Ada Lovelace")))

	// Same child, different casing: still a duplicate.
	err := repo.Create(ctx, newApplication("a2", "fam1", "ADA LOVELACE"))
	require.ErrorIs(t, err, repository.ErrDuplicate)

	apps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
}

func TestApplicationRepository_ExistsFor(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)

	repo := NewApplicationRepository(db)
	require.NoError(t, repo.Create(ctx, newApplication("a1", "fam1", "Ada Lovelace")))

	exists, err := repo.ExistsFor(ctx, "fam1", "ada lovelace", "2019-03-14")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsFor(ctx, "fam1", "Ada Lovelace", "2020-01-01")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.ExistsFor(ctx, "fam2", "Ada Lovelace", "2019-03-14")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestApplicationRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)

	repo := NewApplicationRepository(db)
	app := newApplication("a1", "fam1", "Ada Lovelace")
	require.NoError(t, repo.Create(ctx, app))

	interview := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	app.Status = application.StatusInterviewScheduled
	app.InterviewDate = &interview
	app.AdminNotes = "ready for interview"
	app.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, app))

	loaded, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusInterviewScheduled, loaded.Status)
	require.NotNil(t, loaded.InterviewDate)
	require.True(t, loaded.InterviewDate.Equal(interview))
	require.Equal(t, "ready for interview", loaded.AdminNotes)
}

func TestApplicationRepository_ScheduleInterview(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)

	repo := NewApplicationRepository(db)
	require.NoError(t, repo.Create(ctx, newApplication("a1", "fam1", "Ada Lovelace")))

	first := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ScheduleInterview(ctx, "a1", first))

	loaded, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, application.StatusInterviewScheduled, loaded.Status)
	require.NotNil(t, loaded.InterviewDate)
	require.True(t, loaded.InterviewDate.Equal(first))

	// A second booking for the same application must lose the guard and
	// leave the first interview untouched.
	second := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	require.ErrorIs(t, repo.ScheduleInterview(ctx, "a1", second), repository.ErrConflict)

	loaded, err = repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.True(t, loaded.InterviewDate.Equal(first))
}

func TestApplicationRepository_ScheduleInterview_NotFound(t *testing.T) {
	db := NewTestDB(t)

	repo := NewApplicationRepository(db)
	err := repo.ScheduleInterview(context.Background(), "missing", time.Now())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_Update_NotFound(t *testing.T) {
	db := NewTestDB(t)

	repo := NewApplicationRepository(db)
	err := repo.Update(context.Background(), newApplication("missing", "fam1", "Ada"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplicationRepository_ListByFamily(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertAccount(t, db, "fam1", false)
	insertAccount(t, db, "fam2", false)

	repo := NewApplicationRepository(db)
	require.NoError(t, repo.Create(ctx, newApplication("a1", "fam1", "Ada Lovelace")))
	require.NoError(t, repo.Create(ctx, newApplication("a2", "fam1", "Charles Lovelace")))
	require.NoError(t, repo.Create(ctx, newApplication("a3", "fam2", "Grace Hopper")))

	apps, err := repo.ListByFamily(ctx, "fam1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	for _, app := range apps {
		require.Equal(t, "fam1", app.FamilyID)
	}
}
