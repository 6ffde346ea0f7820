package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"castmind/backend/internal/config"
	"castmind/backend/internal/model"
	repomock "castmind/backend/internal/repository/mock"
	"castmind/backend/internal/scheduler"
	"castmind/backend/internal/service"
	"castmind/backend/internal/service/mock"
)

func testConfig() config.Config {
	return config.Config{
		Location:        time.UTC,
		FetchInterval:   10 * time.Minute,
		ProcessInterval: 15 * time.Minute,
		StatusInterval:  time.Hour,
		CleanupCron:     "0 2 * * *",
		ProcessBatch:    100,
		RetentionDays:   30,
	}
}

func jobByID(t *testing.T, jobs []scheduler.Job, id string) scheduler.Job {
	t.Helper()
	for _, j := range jobs {
		if j.ID == id {
			return j
		}
	}
	t.Fatalf("job %s not registered", id)
	return scheduler.Job{}
}

func TestDefaultJobs(t *testing.T) {
	jobs, err := scheduler.DefaultJobs(testConfig())
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	require.Equal(t, "interval[10m0s]", jobByID(t, jobs, scheduler.JobFetchAll).Trigger.String())
	require.True(t, jobByID(t, jobs, scheduler.JobFetchAll).RunOnStart)
	require.Equal(t, "interval[15m0s]", jobByID(t, jobs, scheduler.JobProcess).Trigger.String())
	require.Equal(t, "interval[1h0m0s]", jobByID(t, jobs, scheduler.JobStatusCheck).Trigger.String())
	require.Equal(t, "cron[0 2 * * *]", jobByID(t, jobs, scheduler.JobRetention).Trigger.String())

	cfg := testConfig()
	cfg.CleanupCron = "every night"
	_, err = scheduler.DefaultJobs(cfg)
	require.Error(t, err)
}

func TestJobs_CallTheirServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	feeds := repomock.NewMockFeedRepository(ctrl)
	articles := repomock.NewMockArticleRepository(ctrl)
	ingest := mock.NewMockIngestService(ctrl)
	process := mock.NewMockProcessService(ctrl)
	maintenance := mock.NewMockMaintenanceService(ctrl)

	sc := &scheduler.SchedulerContext{
		Feeds:       feeds,
		Articles:    articles,
		Ingest:      ingest,
		Process:     process,
		Maintenance: maintenance,
		Config:      testConfig(),
	}
	jobs, err := scheduler.DefaultJobs(sc.Config)
	require.NoError(t, err)
	ctx := context.Background()

	ingest.EXPECT().FetchAll(gomock.Any()).Return(service.FetchSummary{Feeds: 2, Succeeded: 1, Failed: 1}, nil)
	require.NoError(t, jobByID(t, jobs, scheduler.JobFetchAll).Run(ctx, sc))

	ingest.EXPECT().FetchAll(gomock.Any()).Return(service.FetchSummary{}, service.ErrAlreadyFetching)
	require.NoError(t, jobByID(t, jobs, scheduler.JobFetchAll).Run(ctx, sc))

	ingest.EXPECT().FetchAll(gomock.Any()).Return(service.FetchSummary{}, errors.New("db locked"))
	require.Error(t, jobByID(t, jobs, scheduler.JobFetchAll).Run(ctx, sc))

	process.EXPECT().ProcessUnprocessed(gomock.Any(), 100).Return(service.ProcessSummary{Candidates: 3, Processed: 2, Failed: 1}, nil)
	require.NoError(t, jobByID(t, jobs, scheduler.JobProcess).Run(ctx, sc))

	process.EXPECT().ProcessUnprocessed(gomock.Any(), 100).Return(service.ProcessSummary{Candidates: 3, Failed: 3}, nil)
	require.Error(t, jobByID(t, jobs, scheduler.JobProcess).Run(ctx, sc))

	maintenance.EXPECT().ReconcileStatus(gomock.Any()).Return(service.StatusReport{Checked: 1, Recovered: 1}, nil)
	feeds.EXPECT().Stats(gomock.Any()).Return(model.FeedStats{Total: 1, Active: 1}, nil)
	require.NoError(t, jobByID(t, jobs, scheduler.JobStatusCheck).Run(ctx, sc))

	maintenance.EXPECT().Cleanup(gomock.Any(), 30).Return(service.CleanupReport{Deleted: 4}, nil)
	articles.EXPECT().Stats(gomock.Any()).Return(model.ArticleStats{Total: 10}, nil)
	require.NoError(t, jobByID(t, jobs, scheduler.JobRetention).Run(ctx, sc))

	maintenance.EXPECT().Cleanup(gomock.Any(), 30).Return(service.CleanupReport{}, service.ErrInvalid)
	require.ErrorIs(t, jobByID(t, jobs, scheduler.JobRetention).Run(ctx, sc), service.ErrInvalid)
}
