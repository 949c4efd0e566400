package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dormmatch/internal/domain"
	dmerrors "dormmatch/internal/errors"
	"dormmatch/internal/mocks"
	"dormmatch/internal/testutil"
)

func validRegistration() domain.Registration {
	return domain.Registration{
		Email:     "student@uni.example",
		Password:  "secret",
		Faculty:   "Physics",
		Course:    2,
		Gender:    "Female",
		Age:       19,
		WakeHours: "NIGHT_OWL",
	}
}

func ptr[T any](v T) *T { return &v }

func TestRegisterCommand_Execute_NormalizesAndSubmits(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)

	req := validRegistration()
	req.MBTI = ptr("INTJ")

	expected := req
	expected.Gender = domain.GenderFemale
	expected.WakeHours = domain.WakeNightOwl
	expected.MBTI = ptr("intj")
	expected.Hobbies = []string{}

	gateway.On("Register", mock.Anything, expected).Return(okEnvelope(map[string]any{"id": "u1"})).Once()

	envelope, err := NewRegisterCommand(gateway, testutil.Logger()).Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, envelope.OK())
}

func TestRegisterCommand_Execute_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Registration)
		wantField string
	}{
		{"missing email", func(r *domain.Registration) { r.Email = "" }, "email"},
		{"bad email", func(r *domain.Registration) { r.Email = "nope" }, "email"},
		{"missing password", func(r *domain.Registration) { r.Password = "" }, "password"},
		{"missing faculty", func(r *domain.Registration) { r.Faculty = " " }, "faculty"},
		{"zero course", func(r *domain.Registration) { r.Course = 0 }, "course"},
		{"negative age", func(r *domain.Registration) { r.Age = -1 }, "age"},
		{"unknown gender", func(r *domain.Registration) { r.Gender = "other" }, "gender"},
		{"unknown wake type", func(r *domain.Registration) { r.WakeHours = "noon" }, "wake_hours"},
		{"unknown mbti", func(r *domain.Registration) { r.MBTI = ptr("abcd") }, "mbti"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockAuthAPI(t)
			req := validRegistration()
			tt.mutate(&req)

			_, err := NewRegisterCommand(gateway, testutil.Logger()).Execute(context.Background(), req)

			require.Error(t, err)
			assert.True(t, dmerrors.IsValidation(err))
			assert.Contains(t, err.Error(), "'"+tt.wantField+"'")
			gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestProfileCommand_Execute_SubmitsChangedFields(t *testing.T) {
	gateway := mocks.NewMockAuthAPI(t)

	req := domain.ProfileUpdate{Gender: ptr("MALE"), Hobbies: []string{"chess"}, MBTI: ptr("Enfp")}
	expected := domain.ProfileUpdate{Gender: ptr("male"), Hobbies: []string{"chess"}, MBTI: ptr("enfp")}
	gateway.On("UpdateProfile", mock.Anything, expected).Return(okEnvelope(map[string]any{})).Once()

	envelope, err := NewProfileCommand(gateway, testutil.Logger()).Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, envelope.OK())
}

func TestProfileCommand_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.ProfileUpdate
		wantMsg string
	}{
		{"empty update", domain.ProfileUpdate{}, "no profile fields to update"},
		{"blank faculty", domain.ProfileUpdate{Faculty: ptr("")}, "faculty"},
		{"zero course", domain.ProfileUpdate{Course: ptr(0)}, "course"},
		{"zero age", domain.ProfileUpdate{Age: ptr(0)}, "age"},
		{"unknown gender", domain.ProfileUpdate{Gender: ptr("x")}, "gender"},
		{"unknown wake type", domain.ProfileUpdate{WakeHours: ptr("x")}, "wake_hours"},
		{"unknown mbti", domain.ProfileUpdate{MBTI: ptr("x")}, "mbti"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := mocks.NewMockAuthAPI(t)

			_, err := NewProfileCommand(gateway, testutil.Logger()).Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, dmerrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
