package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dormmatch/internal/commands"
	"dormmatch/internal/domain"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a student account",
	Long: `Create a student account. Gender is male or female, wake hours one of
early_bird, night_owl or flexible, and the optional MBTI a four-letter type
such as intj.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the student profile",
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields; only the flags given are changed",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(registerCmd, profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	registerCmd.Flags().StringP("email", "e", "", "Account email (required)")
	registerCmd.Flags().StringP("password", "p", "", "Account password (prefer DORMMATCH_PASSWORD or the prompt)")
	addProfileFlags(registerCmd)
	for _, name := range []string{"email", "faculty", "course", "gender", "age", "wake-hours"} {
		_ = registerCmd.MarkFlagRequired(name)
	}

	addProfileFlags(profileUpdateCmd)
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("faculty", "", "Faculty name")
	cmd.Flags().Int("course", 0, "Course (year of study)")
	cmd.Flags().String("gender", "", "Gender (male or female)")
	cmd.Flags().Int("age", 0, "Age in years")
	cmd.Flags().String("wake-hours", "", "Daily rhythm (early_bird, night_owl or flexible)")
	cmd.Flags().StringSlice("hobbies", nil, "Hobbies (comma separated or repeated)")
	cmd.Flags().String("mbti", "", "MBTI personality type")
}

func runRegister(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	registration := domain.Registration{}
	registration.Email, _ = flags.GetString("email")
	registration.Password, _ = flags.GetString("password")
	registration.Faculty, _ = flags.GetString("faculty")
	registration.Course, _ = flags.GetInt("course")
	registration.Gender, _ = flags.GetString("gender")
	registration.Age, _ = flags.GetInt("age")
	registration.WakeHours, _ = flags.GetString("wake-hours")
	registration.Hobbies, _ = flags.GetStringSlice("hobbies")
	if flags.Changed("mbti") {
		mbti, _ := flags.GetString("mbti")
		registration.MBTI = &mbti
	}

	if registration.Password == "" {
		registration.Password, err = app.PasswordReader.ReadPassword(cmd.Context(), "Choose a password: ")
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	envelope, err := commands.NewRegisterCommand(app.Gateway(), app.Logger).Execute(cmd.Context(), registration)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	return renderEnvelope(cmd, envelope)
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	update := domain.ProfileUpdate{}
	if flags.Changed("faculty") {
		faculty, _ := flags.GetString("faculty")
		update.Faculty = &faculty
	}
	if flags.Changed("course") {
		course, _ := flags.GetInt("course")
		update.Course = &course
	}
	if flags.Changed("gender") {
		gender, _ := flags.GetString("gender")
		update.Gender = &gender
	}
	if flags.Changed("age") {
		age, _ := flags.GetInt("age")
		update.Age = &age
	}
	if flags.Changed("wake-hours") {
		wake, _ := flags.GetString("wake-hours")
		update.WakeHours = &wake
	}
	if flags.Changed("hobbies") {
		update.Hobbies, _ = flags.GetStringSlice("hobbies")
	}
	if flags.Changed("mbti") {
		mbti, _ := flags.GetString("mbti")
		update.MBTI = &mbti
	}

	envelope, err := commands.NewProfileCommand(app.Gateway(), app.Logger).Execute(cmd.Context(), update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return renderEnvelope(cmd, envelope)
}
