package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dormmatch/internal/commands"
	"dormmatch/internal/domain"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Search, create and apply for rooms",
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a room from a YAML or JSON definition",
	Long: `Create a room from a YAML or JSON file ("-" reads standard input).
A missing id is generated and a missing status defaults to available.

Example definition:

  number: "101"
  description: Corner room with two windows
  capacity: 2
  sex_restriction: female
  course_restriction: 1`,
	Args: cobra.NoArgs,
	RunE: runRoomsCreate,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "List rooms available to the current user",
	Args:  cobra.NoArgs,
	RunE:  runRoomsAction(commands.RoomSearch),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show occupancy statistics",
	Args:  cobra.NoArgs,
	RunE:  runRoomsAction(commands.RoomStats),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply for a room",
	Args:  cobra.NoArgs,
	RunE:  runApplicationAction(commands.ApplicationApply),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var roomsAutoAssignCmd = &cobra.Command{
	Use:   "auto-assign",
	Short: "Ask the service to pick the best matching room",
	Args:  cobra.NoArgs,
	RunE:  runApplicationAction(commands.ApplicationAutoAssign),
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(roomsCmd)
	roomsCmd.AddCommand(roomsCreateCmd, roomsSearchCmd, roomsStatsCmd, roomsApplyCmd, roomsAutoAssignCmd)

	roomsCreateCmd.Flags().StringP("file", "f", "", "Room definition file, or - for standard input (required)")
	_ = roomsCreateCmd.MarkFlagRequired("file")

	roomsApplyCmd.Flags().String("room-id", "", "Room to apply for (required)")
	roomsApplyCmd.Flags().String("user-id", "", "Applicant (default: the logged-in user)")
	_ = roomsApplyCmd.MarkFlagRequired("room-id")

	roomsAutoAssignCmd.Flags().String("user-id", "", "Student to assign (default: the logged-in user)")
}

func runRoomsCreate(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = app.FileSystem.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read room definition: %w", err)
	}

	room, err := decodeRoom(data)
	if err != nil {
		return err
	}

	envelope, err := commands.NewRoomsCommand(app.Gateway(), app.Logger).Execute(cmd.Context(), commands.RoomsRequest{
		Action: commands.RoomCreate,
		Room:   room,
	})
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return renderEnvelope(cmd, envelope)
}

// decodeRoom parses a YAML or JSON room definition, rejecting unknown fields.
func decodeRoom(data []byte) (domain.Room, error) {
	var room domain.Room

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&room); err != nil {
		if errors.Is(err, io.EOF) {
			return room, errors.New("room definition is empty")
		}
		return room, fmt.Errorf("failed to parse room definition: %w", err)
	}
	return room, nil
}

func runRoomsAction(action commands.RoomAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}

		envelope, err := commands.NewRoomsCommand(app.Gateway(), app.Logger).
			Execute(cmd.Context(), commands.RoomsRequest{Action: action})
		if err != nil {
			return err
		}
		return renderEnvelope(cmd, envelope)
	}
}
