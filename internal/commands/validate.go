package commands

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
)

// mbtiTypes lists the personality types the auth service accepts.
//
//nolint:gochecknoglobals // Package-level constants for MBTI validation
var mbtiTypes = []string{
	"intj", "intp", "entj", "entp",
	"infj", "infp", "enfj", "enfp",
	"istj", "isfj", "estj", "esfj",
	"istp", "isfp", "estp", "esfp",
}

//nolint:gochecknoglobals // Package-level constants for enum validation
var (
	genders      = []string{domain.GenderMale, domain.GenderFemale}
	wakeTypes    = []string{domain.WakeEarlyBird, domain.WakeNightOwl, domain.WakeFlexible}
	roomStatuses = []string{domain.RoomAvailable, domain.RoomOccupied, domain.RoomReserved}

	applicationStatuses = []string{
		domain.ApplicationPending,
		domain.ApplicationApproved,
		domain.ApplicationRejected,
	}
)

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field, value, "required", "must not be empty")
	}
	return nil
}

func validateEmail(value string) error {
	if err := requireField("email", value); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return errors.NewValidationError("email", value, "email", "must be a valid email address")
	}
	return nil
}

func validatePositive(field string, value int) error {
	if value <= 0 {
		return errors.NewValidationError(field, fmt.Sprint(value), "positive", "must be greater than zero")
	}
	return nil
}

func validateOneOf(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return errors.NewValidationError(field, value, "one_of",
			fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
	return nil
}

// normalizeMBTI lower-cases value and checks it against the known types.
func normalizeMBTI(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if err := validateOneOf("mbti", normalized, mbtiTypes); err != nil {
		return "", err
	}
	return normalized, nil
}

func validateUUID(field, value string) error {
	if err := requireField(field, value); err != nil {
		return err
	}
	if _, err := uuid.Parse(value); err != nil {
		return errors.NewValidationError(field, value, "uuid", "must be a valid UUID")
	}
	return nil
}
