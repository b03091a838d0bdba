package client

import (
	"errors"

	"github.com/MKhiriev/forkeys/internal/app"
	"github.com/spf13/cobra"
)

var errQuestionRequired = errors.New("--question is required")

func (a *App) questionCommand() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "question",
		Short: "Set the security question used to recover the master password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" {
				return errQuestionRequired
			}
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}

			answer, err := a.passwords.ReadPassword("Answer: ")
			if err != nil {
				return err
			}
			if err = svc.RecoveryService.SaveSecurityQuestion(cmd.Context(), question, answer); err != nil {
				return err
			}
			a.println(app.MsgQuestionSaved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Security question")

	return cmd
}

func (a *App) recoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Recover the master password with the security question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}

			question, err := svc.RecoveryService.Question(ctx)
			if err != nil {
				return err
			}
			a.printf("Question: %s\n", question)

			answer, err := a.passwords.ReadPassword("Answer: ")
			if err != nil {
				return err
			}
			password, err := svc.RecoveryService.RecoverPassword(ctx, answer)
			if err != nil {
				return err
			}

			a.printf("Master password: %s\n", password)
			return nil
		},
	}
}

func (a *App) setupCommand() *cobra.Command {
	var question, email string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up password recovery by security question and e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" {
				return errQuestionRequired
			}
			svc, err := a.unlock(cmd.Context())
			if err != nil {
				return err
			}

			answer, err := a.passwords.ReadPassword("Answer: ")
			if err != nil {
				return err
			}
			result, err := svc.RecoveryService.CompleteMandatorySetup(cmd.Context(), question, answer, email)
			if err != nil {
				return err
			}

			if result.Synced {
				a.println(app.MsgSetupSynced)
			} else {
				a.println(app.MsgSetupLocalOnly)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Security question")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Recovery e-mail address")

	return cmd
}

func (a *App) recoverEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recover-email <email>",
		Short: "Ask the registry server to mail your security question and answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if err = svc.RecoveryService.RequestRecoveryEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.println(app.MsgRecoveryEmailSent)
			return nil
		},
	}
}
