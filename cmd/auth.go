package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dormmatch/internal/commands"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	Long: `Sign in with email and password. The password is taken from --password,
then from the DORMMATCH_PASSWORD environment variable, and is otherwise
prompted for on the terminal or read from standard input.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored access token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE:  runWhoAmI,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the claims of the stored access token without contacting any service",
	Args:  cobra.NoArgs,
	RunE:  runSession,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, sessionCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email (required)")
	loginCmd.Flags().StringP("password", "p", "", "Account password (prefer DORMMATCH_PASSWORD or the prompt)")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	loginCommand := commands.NewLoginCommand(
		app.Gateway(),
		app.Credentials,
		app.PasswordReader,
		app.Logger,
	)
	envelope, err := loginCommand.Execute(cmd.Context(), commands.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	if !envelope.OK() {
		return renderEnvelope(cmd, envelope)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in as %s\n", email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	logoutCommand := commands.NewLogoutCommand(app.Gateway(), app.Credentials, app.Logger)
	envelope, err := logoutCommand.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	if !envelope.OK() {
		return renderEnvelope(cmd, envelope)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoAmI(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	envelope := commands.NewWhoAmICommand(app.Gateway(), app.Logger).Execute(cmd.Context())
	return renderEnvelope(cmd, envelope)
}

func runSession(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	result, err := commands.NewSessionCommand(app.Credentials, app.Logger).Execute(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), result)
}
