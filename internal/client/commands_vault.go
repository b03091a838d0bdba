package client

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/forkeys/internal/app"
	"github.com/MKhiriev/forkeys/internal/service"
	"github.com/MKhiriev/forkeys/internal/utils"
	"github.com/MKhiriev/forkeys/models"
	"github.com/spf13/cobra"
)

func (a *App) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			password, confirm, err := a.newPassword("Master password: ")
			if err != nil {
				return err
			}
			if err = svc.VaultService.Initialize(ctx, password, confirm); err != nil {
				return err
			}

			a.println(app.MsgVaultCreated)
			a.println("Run 'forkeys setup' to enable password recovery")
			return nil
		},
	}
}

// newPassword reads a new master password and its confirmation. With
// FORKEYS_PASSWORD set both are taken from it.
func (a *App) newPassword(prompt string) (string, string, error) {
	if password := a.getenv(PasswordEnv); password != "" {
		return password, password, nil
	}

	password, err := a.passwords.ReadPassword(prompt)
	if err != nil {
		return "", "", err
	}
	confirm, err := a.passwords.ReadPassword("Confirm password: ")
	if err != nil {
		return "", "", err
	}
	return password, confirm, nil
}

func (a *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the vault and backup status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			state := svc.VaultService.State()
			a.printf("Vault: %s\n", state)
			if state == service.StateNoVault {
				a.println(app.Hint(service.NoVaultFound))
				return nil
			}

			if created, err := svc.VaultService.CreatedAt(ctx); err != nil {
				return err
			} else if !created.IsZero() {
				a.printf("Created: %s\n", created.Local().Format("2006-01-02 15:04"))
			}

			done, err := svc.RecoveryService.MandatorySetupDone(ctx)
			if err != nil {
				return err
			}
			email, hasEmail, err := svc.RecoveryService.Email(ctx)
			if err != nil {
				return err
			}
			switch {
			case hasEmail:
				a.printf("Recovery: %s\n", email)
			case done:
				a.println("Recovery: security question")
			default:
				a.println("Recovery: not set up, run 'forkeys setup'")
			}

			freq, err := svc.SettingsService.BackupFrequency(ctx)
			if err != nil {
				return err
			}
			last, err := svc.SettingsService.LastBackup(ctx)
			if err != nil {
				return err
			}
			lastText := "never"
			if !last.IsZero() {
				lastText = last.Local().Format("2006-01-02 15:04")
			}
			a.printf("Backup: %s, last %s\n", freq, lastText)

			due, err := svc.SettingsService.IsBackupDue(ctx, a.now())
			if err != nil {
				return err
			}
			if due {
				a.println(app.MsgBackupDue)
			}
			return nil
		},
	}
}

func (a *App) listCommand() *cobra.Command {
	var (
		filter   models.RecordFilter
		category string
		sort     string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if filter.Category, err = parseCategory(category, true); err != nil {
				return err
			}
			if filter.Sort, err = parseSortOrder(sort); err != nil {
				return err
			}

			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}
			records, err := svc.VaultService.Records(filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				a.println(app.MsgNoRecords)
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tUSER\tCATEGORY")
			for _, r := range records {
				title := r.Title
				if r.Hidden {
					title += " (hidden)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, title, r.User, r.Category)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Match title or user")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().BoolVar(&filter.ShowHidden, "hidden", false, "Include hidden records")
	cmd.Flags().StringVar(&sort, "sort", string(models.SortNewest), "Order: newest, oldest or name")

	return cmd
}

func (a *App) getCommand() *cobra.Command {
	var copySecret, show bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}
			record, err := svc.VaultService.Record(args[0])
			if err != nil {
				return err
			}

			secret := strings.Repeat("*", 8)
			if show {
				secret = record.Secret
			}
			a.printf("Title:    %s\n", record.Title)
			a.printf("User:     %s\n", record.User)
			a.printf("Password: %s\n", secret)
			a.printf("Category: %s\n", record.Category)
			if record.Note != "" {
				a.printf("Note:     %s\n", record.Note)
			}

			if copySecret {
				if err = a.clipboard.WriteAll(record.Secret); err != nil {
					return fmt.Errorf("clipboard: %w", err)
				}
				a.println(app.MsgCopied)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copySecret, "copy", false, "Copy the password to the clipboard")
	cmd.Flags().BoolVar(&show, "show", false, "Print the password")

	return cmd
}

func (a *App) addCommand() *cobra.Command {
	var (
		record   models.VaultRecord
		category string
		generate bool
		length   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record, or update one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}

			target := models.VaultRecord{}
			if record.ID != "" {
				if target, err = svc.VaultService.Record(record.ID); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				target.Title = record.Title
			}
			if flags.Changed("user") {
				target.User = record.User
			}
			if flags.Changed("note") {
				target.Note = record.Note
			}
			if flags.Changed("hidden") {
				target.Hidden = record.Hidden
			}
			if flags.Changed("category") {
				if target.Category, err = parseCategory(category, false); err != nil {
					return err
				}
			}

			switch {
			case generate:
				if target.Secret, err = utils.GeneratePassword(length); err != nil {
					return err
				}
			case record.ID == "" || flags.Changed("password"):
				if target.Secret, err = a.passwords.ReadPassword("Password: "); err != nil {
					return err
				}
			}

			saved, err := svc.VaultService.SaveRecord(cmd.Context(), target)
			if err != nil {
				return err
			}
			a.printf("%s (%s)\n", app.MsgRecordSaved, saved.ID)
			if generate {
				a.printf("Generated password: %s\n", saved.Secret)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&record.ID, "id", "", "Update the record with this id")
	flags.StringVarP(&record.Title, "title", "t", "", "Title")
	flags.StringVarP(&record.User, "user", "u", "", "User name or e-mail")
	flags.StringVarP(&record.Note, "note", "n", "", "Note")
	flags.StringVar(&category, "category", string(models.CategoryOther), "Category")
	flags.BoolVar(&record.Hidden, "hidden", false, "Hide from listings")
	flags.Bool("password", false, "Prompt for a new password when updating")
	flags.BoolVarP(&generate, "generate", "g", false, "Generate a random password")
	flags.IntVar(&length, "length", utils.DefaultPasswordLength, "Length of a generated password")

	return cmd
}

func (a *App) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}
			if err = svc.VaultService.DeleteRecord(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.println(app.MsgRecordDeleted)
			return nil
		},
	}
}

func (a *App) wipeCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every record, keeping the vault and its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}

			if !yes {
				answer, err := a.lines.ReadLine(fmt.Sprintf("Delete all %d records? Type 'yes' to confirm: ", svc.VaultService.RecordCount()))
				if err != nil {
					return err
				}
				if strings.TrimSpace(answer) != "yes" {
					a.println(app.MsgWipeAborted)
					return nil
				}
			}

			if err = svc.VaultService.DeleteAllData(cmd.Context()); err != nil {
				return err
			}
			a.println(app.MsgAllDataDeleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (a *App) passwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}

			current, err := a.masterPassword("Current password: ")
			if err != nil {
				return err
			}
			if err = svc.VaultService.Unlock(cmd.Context(), current); err != nil {
				return err
			}

			password, err := a.passwords.ReadPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := a.passwords.ReadPassword("Confirm password: ")
			if err != nil {
				return err
			}

			if err = svc.VaultService.ChangePassword(cmd.Context(), current, password, confirm); err != nil {
				return err
			}
			a.println(app.MsgPasswordChanged)
			return nil
		},
	}
}

func parseCategory(s string, allowEmpty bool) (models.Category, error) {
	c := models.Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" && allowEmpty {
		return "", nil
	}
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func parseSortOrder(s string) (models.SortOrder, error) {
	switch o := models.SortOrder(s); o {
	case models.SortNewest, models.SortOldest, models.SortName:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}
