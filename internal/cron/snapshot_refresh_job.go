package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
)

type snapshotRefresher interface {
	RefreshSnapshots(ctx context.Context) error
}

type commissionSyncer interface {
	SyncRecords(ctx context.Context) (int, error)
}

// SnapshotRefreshJobParams configure the snapshot warm-up job.
type SnapshotRefreshJobParams struct {
	Logger     *logger.Logger
	Reports    snapshotRefresher
	Commission commissionSyncer
}

type snapshotRefreshJob struct {
	logg       *logger.Logger
	reports    snapshotRefresher
	commission commissionSyncer
}

// NewSnapshotRefreshJob builds the job that re-fetches upstream snapshots and
// re-materializes commission records so interactive requests hit warm data.
func NewSnapshotRefreshJob(params SnapshotRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reports == nil {
		return nil, fmt.Errorf("reports service required")
	}
	if params.Commission == nil {
		return nil, fmt.Errorf("commission service required")
	}
	return &snapshotRefreshJob{
		logg:       params.Logger,
		reports:    params.Reports,
		commission: params.Commission,
	}, nil
}

func (j *snapshotRefreshJob) Name() string { return "snapshot-refresh" }

// Run refreshes both concerns independently; one failing does not stop the
// other.
func (j *snapshotRefreshJob) Run(ctx context.Context) error {
	var errs error

	if err := j.reports.RefreshSnapshots(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("refresh snapshots: %w", err))
	} else {
		j.logg.Info(ctx, "upstream snapshots refreshed")
	}

	written, err := j.commission.SyncRecords(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("sync commission records: %w", err))
	} else {
		j.logg.Info(j.logg.WithField(ctx, "records", written), "commission records synced")
	}

	return errs
}
