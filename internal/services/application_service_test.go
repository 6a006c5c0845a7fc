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

func TestApplicationSubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)
	worker := env.createUser(t, models.UserRoleWorker, true)

	t.Run("submits and bumps the job counter", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)

		app := env.submitApplication(t, worker.ID, job.ID, 250)
		assert.Equal(t, models.ApplicationStatusPending, app.Status)

		stored, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ApplicationsCount)
	})

	t.Run("rejects unverified workers", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		unverified := env.createUser(t, models.UserRoleWorker, false)

		_, err := env.applicationService.Submit(ctx, unverified.ID, &dto.SubmitApplicationRequest{
			JobID:          job.ID,
			ProposedBudget: 200,
			AvailableFrom:  time.Now().Add(24 * time.Hour),
		})
		requireAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("rejects client callers", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)

		_, err := env.applicationService.Submit(ctx, client.ID, &dto.SubmitApplicationRequest{
			JobID:          job.ID,
			ProposedBudget: 200,
			AvailableFrom:  time.Now().Add(24 * time.Hour),
		})
		requireAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("rejects budgets outside the job range", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)

		for _, budget := range []float64{50, 600} {
			_, err := env.applicationService.Submit(ctx, worker.ID, &dto.SubmitApplicationRequest{
				JobID:          job.ID,
				ProposedBudget: budget,
				AvailableFrom:  time.Now().Add(24 * time.Hour),
			})
			requireAppCode(t, err, apperrors.CodeValidationFailed)
		}
	})

	t.Run("rejects closed jobs", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		_, err := env.jobService.Transition(ctx, job.ID, client.ID, models.JobStatusCancelled)
		require.NoError(t, err)

		_, err = env.applicationService.Submit(ctx, worker.ID, &dto.SubmitApplicationRequest{
			JobID:          job.ID,
			ProposedBudget: 200,
			AvailableFrom:  time.Now().Add(24 * time.Hour),
		})
		requireAppCode(t, err, apperrors.CodeInvalidState)
	})

	t.Run("blocks a second live application for the same pair", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		env.submitApplication(t, worker.ID, job.ID, 200)

		_, err := env.applicationService.Submit(ctx, worker.ID, &dto.SubmitApplicationRequest{
			JobID:          job.ID,
			ProposedBudget: 300,
			AvailableFrom:  time.Now().Add(24 * time.Hour),
		})
		requireAppCode(t, err, apperrors.CodeAlreadyExists)
	})

	t.Run("withdrawing frees the pair for a new application", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)

		_, err := env.applicationService.Withdraw(ctx, app.ID, worker.ID)
		require.NoError(t, err)

		again := env.submitApplication(t, worker.ID, job.ID, 300)
		assert.Equal(t, models.ApplicationStatusPending, again.Status)
	})
}

func TestApplicationAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("accepts, flips the job, and rejects pending siblings", func(t *testing.T) {
		client := env.createUser(t, models.UserRoleClient, true)
		worker := env.createUser(t, models.UserRoleWorker, true)
		rival := env.createUser(t, models.UserRoleWorker, true)
		job := env.createJob(t, client.ID, 100, 500)

		app := env.submitApplication(t, worker.ID, job.ID, 200)
		rivalApp := env.submitApplication(t, rival.ID, job.ID, 300)

		accepted, err := env.applicationService.Accept(ctx, app.ID, client.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusAccepted, accepted.Status)

		storedJob, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusInProgress, storedJob.Status)
		assert.Equal(t, models.JobPhaseAccepted, storedJob.CurrentStatus)
		require.NotNil(t, storedJob.SelectedWorkerID)
		assert.Equal(t, worker.ID, *storedJob.SelectedWorkerID)

		storedRival, err := env.applicationRepo.FindByID(ctx, rivalApp.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, storedRival.Status)
		require.NotNil(t, storedRival.RejectionReason)
		assert.Equal(t, models.RejectionReasonSelected, *storedRival.RejectionReason)
	})

	t.Run("rejects non-pending applications", func(t *testing.T) {
		client, _, _, app := env.acceptedApplication(t)
		_, err := env.applicationService.Accept(ctx, app.ID, client.ID)
		requireAppCode(t, err, apperrors.CodeInvalidState)
	})

	t.Run("rejects callers who do not own the job", func(t *testing.T) {
		client := env.createUser(t, models.UserRoleClient, true)
		worker := env.createUser(t, models.UserRoleWorker, true)
		stranger := env.createUser(t, models.UserRoleClient, true)
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)

		_, err := env.applicationService.Accept(ctx, app.ID, stranger.ID)
		requireAppCode(t, err, apperrors.CodeForbidden)
	})
}

func TestApplicationRejectAndWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)
	worker := env.createUser(t, models.UserRoleWorker, true)

	t.Run("reject records the reason", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)

		reason := "Budget too high"
		rejected, err := env.applicationService.Reject(ctx, app.ID, client.ID, &reason)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)

		stored, err := env.applicationRepo.FindByID(ctx, app.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.RejectionReason)
		assert.Equal(t, reason, *stored.RejectionReason)
	})

	t.Run("withdraw decrements the job counter", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)

		_, err := env.applicationService.Withdraw(ctx, app.ID, worker.ID)
		require.NoError(t, err)

		stored, err := env.jobRepo.FindByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.ApplicationsCount)
	})

	t.Run("only the applicant can withdraw", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)

		_, err := env.applicationService.Withdraw(ctx, app.ID, client.ID)
		requireAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("withdraw requires pending status", func(t *testing.T) {
		job := env.createJob(t, client.ID, 100, 500)
		app := env.submitApplication(t, worker.ID, job.ID, 200)
		reason := "no"
		_, err := env.applicationService.Reject(ctx, app.ID, client.ID, &reason)
		require.NoError(t, err)

		_, err = env.applicationService.Withdraw(ctx, app.ID, worker.ID)
		requireAppCode(t, err, apperrors.CodeInvalidState)
	})
}

func TestApplicationListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.createUser(t, models.UserRoleClient, true)
	worker := env.createUser(t, models.UserRoleWorker, true)
	rival := env.createUser(t, models.UserRoleWorker, true)

	jobA := env.createJob(t, client.ID, 100, 500)
	jobB := env.createJob(t, client.ID, 100, 500)
	env.submitApplication(t, worker.ID, jobA.ID, 200)
	env.submitApplication(t, worker.ID, jobB.ID, 300)
	env.submitApplication(t, rival.ID, jobA.ID, 400)

	t.Run("worker sees only their applications", func(t *testing.T) {
		list, err := env.applicationService.ListByWorker(ctx, worker.ID, worker.ID, dto.ApplicationListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)
	})

	t.Run("job listing is owner-only", func(t *testing.T) {
		list, err := env.applicationService.ListByJob(ctx, jobA.ID, client.ID, dto.ApplicationListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Total)

		_, err = env.applicationService.ListByJob(ctx, jobA.ID, worker.ID, dto.ApplicationListQuery{})
		requireAppCode(t, err, apperrors.CodeForbidden)
	})

	t.Run("client listing spans all owned jobs", func(t *testing.T) {
		list, err := env.applicationService.ListByClient(ctx, client.ID, client.ID, dto.ApplicationListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.Total)
	})

	t.Run("sorts by proposed budget ascending on request", func(t *testing.T) {
		list, err := env.applicationService.ListByJob(ctx, jobA.ID, client.ID, dto.ApplicationListQuery{
			SortBy: "proposed_budget",
			Order:  "asc",
		})
		require.NoError(t, err)
		require.Len(t, list.Applications, 2)
		assert.Equal(t, float64(200), list.Applications[0].ProposedBudget)
		assert.Equal(t, float64(400), list.Applications[1].ProposedBudget)
	})

	t.Run("cross-user access is denied", func(t *testing.T) {
		_, err := env.applicationService.ListByWorker(ctx, worker.ID, rival.ID, dto.ApplicationListQuery{})
		requireAppCode(t, err, apperrors.CodeForbidden)
	})
}
