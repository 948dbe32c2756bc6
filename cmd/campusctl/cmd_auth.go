package main

import (
	"errors"
	"fmt"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	registerSet   map[string]string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the backend token",
	Long: `Signs in against the campus-ride backend and stores the returned token
so later commands can use it.

Example:
  campusctl login --email admin@uni.edu --password secret`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an operator account",
	Long: `Submits the sign-up form in one step.

Example:
  campusctl register --set name=Ada --set email=ada@uni.edu \
    --set password=secret --set confirmPassword=secret`,
	RunE: runRegister,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Operator email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Operator password")

	registerCmd.Flags().StringToStringVar(&registerSet, "set", nil, "Form field as key=value (repeatable)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	_, session, err := env.auth.Login(ctx, map[string]string{
		"email":    loginEmail,
		"password": loginPassword,
	})
	if errors.Is(err, domain.ErrUnauthorized) {
		return errors.New("Invalid email or password")
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return report([]domain.Notification{verr.Notification()}, err)
	}
	if err != nil {
		return err
	}

	if err := env.store.Save(credentials{
		Email:        session.Email,
		Role:         session.Role,
		BackendToken: session.BackendToken,
		ExpiresAt:    session.ExpiresAt,
	}); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Fprintln(env.out, successStyle.Render("Signed in as "+session.Email))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := env.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(env.out, mutedStyle.Render("Signed out."))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	form, notes, err := env.auth.Register(ctx, registerSet)
	if form != nil {
		defer renderInline(env.out, form.Inline)
	}
	return report(notes, err)
}
