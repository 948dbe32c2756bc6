package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	timeout   time.Duration
	tokenPath string

	env *console

	// errReported marks a failure already shown to the operator.
	errReported = errors.New("reported")
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "campusctl",
	Short: "Terminal console for the campus-ride admin API",
	Long: `campusctl drives the campus-ride backend from a terminal.

It keeps the backend token obtained at sign-in on disk and runs the same
create, list and edit workflows as the web console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if tokenPath == "" {
			tokenPath, err = defaultTokenPath()
			if err != nil {
				return err
			}
		}
		env = newConsole(cfg, newTokenStore(tokenPath), cmd.OutOrStdout(), cmd.InOrStdin(), verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			env.logger.Sync()
		}
	},
}

// report prints the notifications of a workflow step. A failed step whose
// notifications already explain it becomes errReported.
func report(notes []domain.Notification, err error) error {
	renderNotifications(env.out, notes)
	if err != nil && len(notes) > 0 && !errors.Is(err, domain.ErrSessionExpired) {
		return errReported
	}
	return err
}

// withTimeout bounds one command by the --timeout flag.
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token-file", "", "Where the sign-in token is kept (default: user config dir)")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd)
	rootCmd.AddCommand(campusCmd, zoneCmd, riderCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrSessionNotFound) {
			if env != nil {
				env.store.Clear()
			}
			fmt.Fprintln(os.Stderr, errorStyle.Render("Session expired, please sign in again"))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
