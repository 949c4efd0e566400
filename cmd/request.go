package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dormmatch/internal/commands"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var requestCmd = &cobra.Command{
	Use:   "request METHOD SERVICE PATH",
	Short: "Send an arbitrary request to a backend service",
	Long: `Send an arbitrary request through the gateway and print the resulting
envelope data. SERVICE is AUTH or ROOM_MANAGEMENT.

  dormmatch request GET ROOM_MANAGEMENT /rooms/applications --query user_id=<id>
  dormmatch request POST AUTH /auth/login --data '{"email":"a@b.c","password":"..."}'`,
	Args: cobra.ExactArgs(3),
	RunE: runRequest,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().StringP("data", "d", "", "JSON request body")
	requestCmd.Flags().StringArrayP("query", "q", nil, "Query parameter as key=value (repeatable, order kept)")
}

func runRequest(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	data, _ := cmd.Flags().GetString("data")
	query, _ := cmd.Flags().GetStringArray("query")

	envelope, err := commands.NewRequestCommand(app.Gateway(), app.Logger).Execute(cmd.Context(), commands.RequestRequest{
		Method:   args[0],
		Service:  args[1],
		Endpoint: args[2],
		Body:     data,
		Query:    query,
	})
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return renderEnvelope(cmd, envelope)
}
