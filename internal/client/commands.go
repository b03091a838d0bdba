package client

import (
	"github.com/spf13/cobra"
)

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "forkeys",
		Short: "A locally encrypted credential vault",
		Long: `forkeys keeps your credentials in a vault encrypted with a master password.
Nothing leaves this machine except the optional recovery registration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.overrides.ConfigFilePath, "config", "c", "", "Config file path (.json, .yaml, .yml)")
	flags.StringVar(&a.overrides.Storage.DB.DSN, "db", "", `Vault store: "memory", "bolt://<path>" or a SQLite path`)
	flags.StringVar(&a.overrides.Adapter.BaseURL, "server", "", "Registry server URL")
	flags.StringVar(&a.overrides.App.BackupDir, "backup-dir", "", "Directory for backup files")

	root.AddCommand(
		a.initCommand(),
		a.statusCommand(),
		a.listCommand(),
		a.getCommand(),
		a.addCommand(),
		a.rmCommand(),
		a.wipeCommand(),
		a.passwdCommand(),
		a.questionCommand(),
		a.recoverCommand(),
		a.setupCommand(),
		a.recoverEmailCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.backupFreqCommand(),
		a.autobackupCommand(),
		a.settingsCommand(),
		a.versionCommand(),
	)

	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.println(a.buildInfo.String())
		},
	}
}
