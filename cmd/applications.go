package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dormmatch/internal/commands"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List and review room applications",
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the applications of a student",
	Args:  cobra.NoArgs,
	RunE:  runApplicationAction(commands.ApplicationList),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var applicationsApproveCmd = &cobra.Command{
	Use:   "approve APPLICATION_ID",
	Short: "Approve an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationAction(commands.ApplicationApprove),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var applicationsRejectCmd = &cobra.Command{
	Use:   "reject APPLICATION_ID",
	Short: "Reject an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationAction(commands.ApplicationReject),
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(applicationsCmd)
	applicationsCmd.AddCommand(applicationsListCmd, applicationsApproveCmd, applicationsRejectCmd)

	applicationsListCmd.Flags().String("user-id", "", "Student whose applications to list (default: the logged-in user)")
	applicationsListCmd.Flags().String("status", "", "Only list applications with this status (pending, approved, rejected)")
	applicationsApproveCmd.Flags().StringP("comment", "c", "", "Comment sent with the decision")
	applicationsRejectCmd.Flags().StringP("comment", "c", "", "Comment sent with the decision")
}

func runApplicationAction(action commands.ApplicationAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}

		req := commands.ApplicationsRequest{
			Action:  action,
			UserID:  stringFlag(cmd.Flags(), "user-id"),
			Status:  stringFlag(cmd.Flags(), "status"),
			RoomID:  stringFlag(cmd.Flags(), "room-id"),
			Comment: stringFlag(cmd.Flags(), "comment"),
		}
		if len(args) > 0 {
			req.ApplicationID = args[0]
		}

		applicationsCommand := commands.NewApplicationsCommand(app.Gateway(), app.Credentials, app.Logger)
		envelope, err := applicationsCommand.Execute(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to %s: %w", action, err)
		}
		return renderEnvelope(cmd, envelope)
	}
}

// stringFlag returns the value of a string flag, or "" when the command
// does not define it.
func stringFlag(flags *pflag.FlagSet, name string) string {
	if flags.Lookup(name) == nil {
		return ""
	}
	value, _ := flags.GetString(name)
	return value
}
