package commands

import (
	"context"
	"log/slog"
	"strings"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
)

// RegisterCommand creates a student account.
type RegisterCommand struct {
	gateway domain.AuthAPI
	logger  *slog.Logger
}

// NewRegisterCommand creates a new register command.
func NewRegisterCommand(gateway domain.AuthAPI, logger *slog.Logger) *RegisterCommand {
	return &RegisterCommand{gateway: gateway, logger: logging.WithOperation(logger, "register")}
}

// Execute validates the registration and submits it.
func (c *RegisterCommand) Execute(ctx context.Context, req domain.Registration) (domain.Envelope, error) {
	registration, err := normalizeRegistration(req)
	if err != nil {
		return domain.Envelope{}, err
	}

	c.logger.InfoContext(ctx, "Registering student",
		"email", registration.Email,
		"faculty", registration.Faculty,
		"course", registration.Course)

	return c.gateway.Register(ctx, registration), nil
}

func normalizeRegistration(req domain.Registration) (domain.Registration, error) {
	if err := validateEmail(req.Email); err != nil {
		return req, err
	}
	if err := requireField("password", req.Password); err != nil {
		return req, err
	}
	if err := requireField("faculty", req.Faculty); err != nil {
		return req, err
	}
	if err := validatePositive("course", req.Course); err != nil {
		return req, err
	}
	if err := validatePositive("age", req.Age); err != nil {
		return req, err
	}

	req.Gender = strings.ToLower(req.Gender)
	if err := validateOneOf("gender", req.Gender, genders); err != nil {
		return req, err
	}
	req.WakeHours = strings.ToLower(req.WakeHours)
	if err := validateOneOf("wake_hours", req.WakeHours, wakeTypes); err != nil {
		return req, err
	}

	if req.MBTI != nil {
		mbti, err := normalizeMBTI(*req.MBTI)
		if err != nil {
			return req, err
		}
		req.MBTI = &mbti
	}

	// The service expects an array, never null.
	if req.Hobbies == nil {
		req.Hobbies = []string{}
	}
	return req, nil
}

// ProfileCommand updates the current user's profile.
type ProfileCommand struct {
	gateway domain.AuthAPI
	logger  *slog.Logger
}

// NewProfileCommand creates a new profile command.
func NewProfileCommand(gateway domain.AuthAPI, logger *slog.Logger) *ProfileCommand {
	return &ProfileCommand{gateway: gateway, logger: logging.WithOperation(logger, "profile")}
}

// Execute validates the changed fields and submits them.
func (c *ProfileCommand) Execute(ctx context.Context, req domain.ProfileUpdate) (domain.Envelope, error) {
	update, err := normalizeProfileUpdate(req)
	if err != nil {
		return domain.Envelope{}, err
	}

	c.logger.InfoContext(ctx, "Updating profile")
	return c.gateway.UpdateProfile(ctx, update), nil
}

func normalizeProfileUpdate(req domain.ProfileUpdate) (domain.ProfileUpdate, error) {
	if req.IsEmpty() {
		return req, errors.NewValidationError("", "", "non_empty", "no profile fields to update")
	}

	if req.Faculty != nil {
		if err := requireField("faculty", *req.Faculty); err != nil {
			return req, err
		}
	}
	if req.Course != nil {
		if err := validatePositive("course", *req.Course); err != nil {
			return req, err
		}
	}
	if req.Age != nil {
		if err := validatePositive("age", *req.Age); err != nil {
			return req, err
		}
	}
	if req.Gender != nil {
		gender := strings.ToLower(*req.Gender)
		if err := validateOneOf("gender", gender, genders); err != nil {
			return req, err
		}
		req.Gender = &gender
	}
	if req.WakeHours != nil {
		wake := strings.ToLower(*req.WakeHours)
		if err := validateOneOf("wake_hours", wake, wakeTypes); err != nil {
			return req, err
		}
		req.WakeHours = &wake
	}
	if req.MBTI != nil {
		mbti, err := normalizeMBTI(*req.MBTI)
		if err != nil {
			return req, err
		}
		req.MBTI = &mbti
	}
	return req, nil
}
