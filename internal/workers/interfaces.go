// Package workers runs the client's background jobs.
//
// A [Worker] blocks in Run until its context is cancelled. [Workers] runs a
// set of them together and returns once all have stopped.
package workers

import (
	"context"
	"time"
)

// Worker is a long-running background job.
//
// Run must return promptly after ctx is cancelled. A non-nil error means the
// worker could not continue; errors of a single iteration are expected to be
// logged by the worker itself.
type Worker interface {
	Run(ctx context.Context) error
}

// BackupWriter writes an automatic backup into dir and returns its path.
type BackupWriter interface {
	AutoBackup(ctx context.Context, dir string, now time.Time) (string, error)
}

// BackupSchedule reports whether a backup is due at now.
type BackupSchedule interface {
	IsBackupDue(ctx context.Context, now time.Time) (bool, error)
}
