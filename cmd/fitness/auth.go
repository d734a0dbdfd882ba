package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// credentialsForm спрашивает email и пароль, если они не переданы флагами.
func credentialsForm(email, password *string, withName *string) *huh.Form {
	var fields []huh.Field

	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email).Validate(validateEmail))
	}
	if withName != nil && *withName == "" {
		fields = append(fields, huh.NewInput().Title("Name").Description("optional").Value(withName))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(validateRequired))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func runForm(f *huh.Form) error {
	if f == nil {
		return nil
	}
	return f.Run()
}

func newSignUpCmd(a *app) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runForm(credentialsForm(&email, &password, &name)); err != nil {
				return err
			}

			ctx := a.ctx(cmd.Context())
			if err := a.session.SignUp(ctx, strings.TrimSpace(email), password, strings.TrimSpace(name)); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Account created. Check %s for the confirmation code, then run `fitness confirm`.", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newConfirmCmd(a *app) *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the account email with the emailed code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runForm(confirmForm(&email, &code)); err != nil {
				return err
			}

			ctx := a.ctx(cmd.Context())
			if err := a.session.ConfirmSignUp(ctx, strings.TrimSpace(email), strings.TrimSpace(code)); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Email confirmed. You can sign in now.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "6-digit confirmation code")

	return cmd
}

func confirmForm(email, code *string) *huh.Form {
	var fields []huh.Field

	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email).Validate(validateEmail))
	}
	if *code == "" {
		fields = append(fields, huh.NewInput().Title("Confirmation code").CharLimit(6).Value(code).Validate(validateCode))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func newResendCodeCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "resend-code",
		Short: "Send a new confirmation code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				if err := huh.NewInput().Title("Email").Value(&email).Validate(validateEmail).Run(); err != nil {
					return err
				}
			}

			if err := a.client.ResendCode(a.ctx(cmd.Context()), strings.TrimSpace(email)); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "A new code has been sent to %s.", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

func newSignInCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runForm(credentialsForm(&email, &password, nil)); err != nil {
				return err
			}

			if err := a.session.SignIn(a.ctx(cmd.Context()), strings.TrimSpace(email), password); err != nil {
				return err
			}

			u, _ := a.session.User()
			success(cmd.OutOrStdout(), "Signed in as %s.", u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newSignOutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.SignOut(a.ctx(cmd.Context()))
			success(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.restore(a.ctx(cmd.Context()))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable("Signed in", []kv{
				{"User ID", u.ID},
				{"Email", u.Email},
				{"Name", u.Name},
			}))
			return nil
		},
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.RefreshAuth(a.ctx(cmd.Context())); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Session refreshed.")
			return nil
		},
	}
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email a password reset code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				if err := huh.NewInput().Title("Email").Value(&email).Validate(validateEmail).Run(); err != nil {
					return err
				}
			}

			if err := a.client.ForgotPassword(a.ctx(cmd.Context()), strings.TrimSpace(email)); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "If the account exists, a reset code has been sent. Run `fitness reset-password` next.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var email, code, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the emailed reset code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runForm(confirmForm(&email, &code)); err != nil {
				return err
			}
			if password == "" {
				err := huh.NewInput().
					Title("New password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(validateRequired).
					Run()
				if err != nil {
					return err
				}
			}

			ctx := a.ctx(cmd.Context())
			if err := a.client.ResetPassword(ctx, strings.TrimSpace(email), strings.TrimSpace(code), password); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Password updated. Sign in with the new password.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "6-digit reset code")
	cmd.Flags().StringVar(&password, "password", "", "new password")

	return cmd
}
