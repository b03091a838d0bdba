package client

import (
	"time"

	"github.com/MKhiriev/forkeys/internal/app"
	"github.com/MKhiriev/forkeys/internal/workers"
	"github.com/MKhiriev/forkeys/models"
	"github.com/spf13/cobra"
)

func (a *App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup file",
		Long: `Write the vault to a backup file in the backup directory.
The file stays encrypted with the master password; no password is asked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			path, err := svc.BackupService.ExportToFile(cmd.Context(), a.cfg.App.BackupDir, a.now())
			if err != nil {
				return err
			}
			a.printf("Backup written to %s\n", path)
			return nil
		},
	}
}

func (a *App) importCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from a backup file",
		Long: `Import records from a backup file protected by the given password.
merge adds records whose id is not in the vault yet, replace discards the
current records. On a fresh install the backup's password becomes the
master password.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importMode, err := models.ParseImportMode(mode)
			if err != nil {
				return err
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			password, err := a.masterPassword("Backup password: ")
			if err != nil {
				return err
			}
			result, err := svc.BackupService.ImportFile(cmd.Context(), args[0], password, importMode)
			if err != nil {
				return err
			}

			a.printf("Imported %d records (%s): %d added, %d total\n",
				result.Imported, result.Mode, result.Added, result.Total)
			if result.Restored {
				a.println("The backup's password is now the master password")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(models.ImportMerge), "merge or replace")

	return cmd
}

func (a *App) backupFreqCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup-freq [daily|weekly|monthly|manual]",
		Short: "Show or set how often a backup is due",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				freq, err := svc.SettingsService.BackupFrequency(cmd.Context())
				if err != nil {
					return err
				}
				a.println(freq)
				return nil
			}

			freq, err := models.ParseBackupFrequency(args[0])
			if err != nil {
				return err
			}
			return svc.SettingsService.SetBackupFrequency(cmd.Context(), freq)
		},
	}
}

func (a *App) autobackupCommand() *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "autobackup",
		Short: "Write a backup if one is due",
		Long: `Write a backup if the backup frequency says one is due.
With --watch the check repeats at the given interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			worker := workers.NewBackupWorker(svc.BackupService, svc.SettingsService, a.cfg.App.BackupDir, watch, a.logger)
			if watch > 0 {
				return workers.NewWorkers(worker).Run(ctx)
			}

			path, err := worker.RunOnce(ctx)
			if err != nil {
				return err
			}
			if path == "" {
				a.println(app.MsgBackupNotDue)
				return nil
			}
			a.printf("Backup written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 0, "Keep running and check at this interval (e.g. 1h)")

	return cmd
}

func (a *App) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			theme, err := svc.SettingsService.Theme(ctx)
			if err != nil {
				return err
			}
			lang, err := svc.SettingsService.Language(ctx)
			if err != nil {
				return err
			}
			freq, err := svc.SettingsService.BackupFrequency(ctx)
			if err != nil {
				return err
			}

			a.printf("theme:       %s\n", theme)
			a.printf("language:    %s\n", lang)
			a.printf("backup-freq: %s\n", freq)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "theme <dark|light>",
			Short: "Set the theme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.services(cmd.Context())
				if err != nil {
					return err
				}
				return svc.SettingsService.SetTheme(cmd.Context(), models.Theme(args[0]))
			},
		},
		&cobra.Command{
			Use:   "language <en|zh>",
			Short: "Set the language",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.services(cmd.Context())
				if err != nil {
					return err
				}
				return svc.SettingsService.SetLanguage(cmd.Context(), models.Language(args[0]))
			},
		},
	)

	return cmd
}
