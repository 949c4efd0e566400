package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"dormmatch/internal/domain"
)

// MockAuthAPI is a mock implementation of domain.AuthAPI.
type MockAuthAPI struct {
	mock.Mock
}

// NewMockAuthAPI creates a mock and registers expectation checks on cleanup.
func NewMockAuthAPI(t *testing.T) *MockAuthAPI {
	m := &MockAuthAPI{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) domain.Envelope {
	return m.Called(ctx, email, password).Get(0).(domain.Envelope)
}

func (m *MockAuthAPI) Register(ctx context.Context, registration domain.Registration) domain.Envelope {
	return m.Called(ctx, registration).Get(0).(domain.Envelope)
}

func (m *MockAuthAPI) Logout(ctx context.Context) domain.Envelope {
	return m.Called(ctx).Get(0).(domain.Envelope)
}

func (m *MockAuthAPI) GetAuthUser(ctx context.Context) domain.Envelope {
	return m.Called(ctx).Get(0).(domain.Envelope)
}

func (m *MockAuthAPI) UpdateProfile(ctx context.Context, profile domain.ProfileUpdate) domain.Envelope {
	return m.Called(ctx, profile).Get(0).(domain.Envelope)
}

// MockRoomAPI is a mock implementation of domain.RoomAPI.
type MockRoomAPI struct {
	mock.Mock
}

// NewMockRoomAPI creates a mock and registers expectation checks on cleanup.
func NewMockRoomAPI(t *testing.T) *MockRoomAPI {
	m := &MockRoomAPI{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRoomAPI) CreateRoom(ctx context.Context, room domain.Room) domain.Envelope {
	return m.Called(ctx, room).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) SearchRooms(ctx context.Context) domain.Envelope {
	return m.Called(ctx).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) ApplyForRoom(ctx context.Context, userID, roomID string) domain.Envelope {
	return m.Called(ctx, userID, roomID).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) GetApplications(ctx context.Context, userID string) domain.Envelope {
	return m.Called(ctx, userID).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) ApproveApplication(ctx context.Context, applicationID, comment string) domain.Envelope {
	return m.Called(ctx, applicationID, comment).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) RejectApplication(ctx context.Context, applicationID, comment string) domain.Envelope {
	return m.Called(ctx, applicationID, comment).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) GetRoomStats(ctx context.Context) domain.Envelope {
	return m.Called(ctx).Get(0).(domain.Envelope)
}

func (m *MockRoomAPI) AutoAssignRoom(ctx context.Context, userID string) domain.Envelope {
	return m.Called(ctx, userID).Get(0).(domain.Envelope)
}

var (
	_ domain.AuthAPI = (*MockAuthAPI)(nil)
	_ domain.RoomAPI = (*MockRoomAPI)(nil)
)

// MockRequester is a mock implementation of domain.Requester.
type MockRequester struct {
	mock.Mock
}

// NewMockRequester creates a mock and registers expectation checks on cleanup.
func NewMockRequester(t *testing.T) *MockRequester {
	m := &MockRequester{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRequester) Request(
	ctx context.Context,
	method string,
	service domain.ServiceID,
	endpoint string,
	body any,
	params domain.Params,
) domain.Envelope {
	return m.Called(ctx, method, service, endpoint, body, params).Get(0).(domain.Envelope)
}

var (
	_ domain.AuthAPI   = (*MockAuthAPI)(nil)
	_ domain.RoomAPI   = (*MockRoomAPI)(nil)
	_ domain.Requester = (*MockRequester)(nil)
)
