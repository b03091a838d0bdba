package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/forkeys/internal/logger"
)

// DefaultBackupCheckInterval is how often [BackupWorker] asks whether a
// backup is due.
const DefaultBackupCheckInterval = time.Hour

// BackupWorker writes an automatic backup whenever the configured backup
// frequency says one is due.
type BackupWorker struct {
	backup   BackupWriter
	schedule BackupSchedule
	dir      string
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewBackupWorker(backup BackupWriter, schedule BackupSchedule, dir string, interval time.Duration, logger *logger.Logger) *BackupWorker {
	if interval <= 0 {
		interval = DefaultBackupCheckInterval
	}
	return &BackupWorker{
		backup:   backup,
		schedule: schedule,
		dir:      dir,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// RunOnce writes a backup if one is due. It returns the written path, or ""
// when nothing was due.
func (w *BackupWorker) RunOnce(ctx context.Context) (string, error) {
	now := w.now()

	due, err := w.schedule.IsBackupDue(ctx, now)
	if err != nil || !due {
		return "", err
	}

	return w.backup.AutoBackup(ctx, w.dir, now)
}

// Run checks immediately and then once per interval until ctx is done.
// Failed attempts are logged and retried on the next tick.
func (w *BackupWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		path, err := w.RunOnce(ctx)
		switch {
		case err != nil:
			w.logger.Err(err).Msg("automatic backup failed")
		case path != "":
			w.logger.Info().Str("path", path).Msg("automatic backup written")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
