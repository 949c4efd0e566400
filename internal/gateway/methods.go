package gateway

import (
	"context"
	"net/http"
	"net/url"

	"dormmatch/internal/domain"
)

const (
	pathLogin        = "/auth/login"
	pathRegister     = "/auth/register"
	pathLogout       = "/auth/logout"
	pathAuthUser     = "/auth/user"
	pathProfile      = "/auth/profile"
	pathRooms        = "/rooms"
	pathRoomSearch   = "/rooms/search"
	pathRoomApply    = "/rooms/apply"
	pathApplications = "/rooms/applications"
	pathRoomStats    = "/rooms/stats"
	pathAutoAssign   = "/rooms/auto-assign"
)

type applyRequest struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
}

type userRequest struct {
	UserID string `json:"user_id"`
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

// Login exchanges credentials for an access token.
func (g *Gateway) Login(ctx context.Context, email, password string) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceAuth, pathLogin,
		domain.Credentials{Email: email, Password: password}, nil)
}

// Register creates a student account.
func (g *Gateway) Register(ctx context.Context, registration domain.Registration) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceAuth, pathRegister, registration, nil)
}

// Logout ends the current session.
func (g *Gateway) Logout(ctx context.Context) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceAuth, pathLogout, nil, nil)
}

// GetAuthUser returns the user the current token belongs to.
func (g *Gateway) GetAuthUser(ctx context.Context) domain.Envelope {
	return g.Request(ctx, http.MethodGet, domain.ServiceAuth, pathAuthUser, nil, nil)
}

// UpdateProfile patches the current user's profile.
func (g *Gateway) UpdateProfile(ctx context.Context, profile domain.ProfileUpdate) domain.Envelope {
	return g.Request(ctx, http.MethodPatch, domain.ServiceAuth, pathProfile, profile, nil)
}

// CreateRoom registers a new room.
func (g *Gateway) CreateRoom(ctx context.Context, room domain.Room) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceRoomManagement, pathRooms, room, nil)
}

// SearchRooms lists rooms available to the current user.
func (g *Gateway) SearchRooms(ctx context.Context) domain.Envelope {
	return g.Request(ctx, http.MethodGet, domain.ServiceRoomManagement, pathRoomSearch, nil, nil)
}

// ApplyForRoom files an application for userID to roomID.
func (g *Gateway) ApplyForRoom(ctx context.Context, userID, roomID string) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceRoomManagement, pathRoomApply,
		applyRequest{UserID: userID, RoomID: roomID}, nil)
}

// GetApplications lists the applications filed by userID.
func (g *Gateway) GetApplications(ctx context.Context, userID string) domain.Envelope {
	return g.Request(ctx, http.MethodGet, domain.ServiceRoomManagement, pathApplications, nil,
		domain.Params{{Key: "user_id", Value: userID}})
}

// ApproveApplication approves an application with an optional comment.
func (g *Gateway) ApproveApplication(ctx context.Context, applicationID, comment string) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceRoomManagement,
		applicationPath(applicationID, "approve"), reviewRequest{Comment: comment}, nil)
}

// RejectApplication rejects an application with an optional comment.
func (g *Gateway) RejectApplication(ctx context.Context, applicationID, comment string) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceRoomManagement,
		applicationPath(applicationID, "reject"), reviewRequest{Comment: comment}, nil)
}

// GetRoomStats returns occupancy statistics.
func (g *Gateway) GetRoomStats(ctx context.Context) domain.Envelope {
	return g.Request(ctx, http.MethodGet, domain.ServiceRoomManagement, pathRoomStats, nil, nil)
}

// AutoAssignRoom asks the backend to pick the best room for userID.
func (g *Gateway) AutoAssignRoom(ctx context.Context, userID string) domain.Envelope {
	return g.Request(ctx, http.MethodPost, domain.ServiceRoomManagement, pathAutoAssign,
		userRequest{UserID: userID}, nil)
}

func applicationPath(applicationID, action string) string {
	return pathApplications + "/" + url.PathEscape(applicationID) + "/" + action
}

var _ domain.Gateway = (*Gateway)(nil)
