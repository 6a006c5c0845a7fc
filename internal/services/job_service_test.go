package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/services/dto"
	"github.com/alikamatu/artisan-app-sub000/pkg/apperrors"
)

func TestJobCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)

	t.Run("creates an open job with matching phase", func(t *testing.T) {
		job, err := env.jobService.Create(ctx, client.ID, &dto.CreateJobRequest{
			Title:     "Paint the fence",
			BudgetMin: 50,
			BudgetMax: 150,
		})
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusOpen, job.Status)
		assert.Equal(t, models.JobPhaseOpen, job.CurrentStatus)
		assert.Equal(t, client.ID, job.ClientID)
	})

	t.Run("rejects non-client callers", func(t *testing.T) {
		worker := env.createUser(t, models.UserRoleWorker, true)
		_, err := env.jobService.Create(ctx, worker.ID, &dto.CreateJobRequest{Title: "Not allowed"})
		requireAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("rejects inverted budget range", func(t *testing.T) {
		_, err := env.jobService.Create(ctx, client.ID, &dto.CreateJobRequest{
			Title:     "Broken budget",
			BudgetMin: 200,
			BudgetMax: 100,
		})
		requireAppCode(t, err, apperrors.CodeValidationFailed)
	})

	t.Run("rejects past start dates", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		_, err := env.jobService.Create(ctx, client.ID, &dto.CreateJobRequest{
			Title:     "Yesterday's job",
			StartDate: &past,
		})
		requireAppCode(t, err, apperrors.CodeValidationFailed)
	})
}

func TestJobTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)

	t.Run("moves status and phase together", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)

		updated, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusInProgress, updated.Status)
		assert.Equal(t, models.JobPhaseInProgress, updated.CurrentStatus)

		stored, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusInProgress, stored.Status)
		assert.Equal(t, models.JobPhaseInProgress, stored.CurrentStatus)
	})

	t.Run("rejects transitions outside the table", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		_, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusCompleted)
		requireAppCode(t, err, apperrors.CodeInvalidState)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		_, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusInProgress)
		require.NoError(t, err)
		_, err = env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusCompleted)
		require.NoError(t, err)

		for _, target := range []models.JobStatus{models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCancelled} {
			_, err = env.jobService.Transition(ctx, job.ID, client.ID, target)
			requireAppCode(t, err, apperrors.CodeInvalidState)
		}
	})

	t.Run("cancelled jobs can reopen", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		_, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusCancelled)
		require.NoError(t, err)

		reopened, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusOpen)
		require.NoError(t, err)
		assert.Equal(t, models.JobPhaseOpen, reopened.CurrentStatus)
	})

	t.Run("rejects non-owners", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		other := env.createUser(t, models.UserRoleClient, true)
		_, err := env.jobService.Transition(ctx, job.ID, other.ID, models.JobStatusCancelled)
		requireAppCode(t, err, apperrors.CodeForbidden)
	})
}

func TestJobRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)

	t.Run("removes an open job", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		require.NoError(t, env.jobService.Remove(ctx, job.ID, client.ID))

		_, err := env.jobService.Get(ctx, job.ID, client.ID)
		requireAppCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("rejects removal once in progress", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		_, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusInProgress)
		require.NoError(t, err)

		err = env.jobService.Remove(ctx, job.ID, client.ID)
		requireAppCode(t, err, apperrors.CodeInvalidState)
	})

	t.Run("rejects non-owners", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 200)
		other := env.createUser(t, models.UserRoleClient, true)
		err := env.jobService.Remove(ctx, job.ID, other.ID)
		requireAppCode(t, err, apperrors.CodeForbidden)
	})
}

func TestJobCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)
	job := env.createJob(t, client.ID, 100, 200)

	t.Run("applications count clamps at zero", func(t *testing.T) {
		require.NoError(t, env.jobService.AdjustApplicationsCount(ctx, job.ID, -5))

		stored, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.ApplicationsCount)
	})

	t.Run("view increments accumulate", func(t *testing.T) {
		env.jobService.IncrementViews(ctx, job.ID)
		env.jobService.IncrementViews(ctx, job.ID)

		stored, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.ViewsCount)
	})
}

func TestJobListOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)

	for i := 0; i < 3; i++ {
		env.createJob(t, client.ID, 100, 200)
	}
	closed := env.createJob(t, client.ID, 100, 200)
	_, err := env.jobService.Transition(ctx, closed.ID, client.ID, models.JobStatusCancelled)
	require.NoError(t, err)

	list, err := env.jobService.ListOpen(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Jobs, 2)

	second, err := env.jobService.ListOpen(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, second.Jobs, 1)
}
