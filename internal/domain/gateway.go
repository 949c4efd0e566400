package domain

import "context"

// AuthAPI covers the authentication service endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) Envelope
	Register(ctx context.Context, registration Registration) Envelope
	Logout(ctx context.Context) Envelope
	GetAuthUser(ctx context.Context) Envelope
	UpdateProfile(ctx context.Context, profile ProfileUpdate) Envelope
}

// RoomAPI covers the room-management service endpoints.
type RoomAPI interface {
	CreateRoom(ctx context.Context, room Room) Envelope
	SearchRooms(ctx context.Context) Envelope
	ApplyForRoom(ctx context.Context, userID, roomID string) Envelope
	GetApplications(ctx context.Context, userID string) Envelope
	ApproveApplication(ctx context.Context, applicationID, comment string) Envelope
	RejectApplication(ctx context.Context, applicationID, comment string) Envelope
	GetRoomStats(ctx context.Context) Envelope
	AutoAssignRoom(ctx context.Context, userID string) Envelope
}

// Requester performs the generic gateway call.
type Requester interface {
	Request(
		ctx context.Context,
		method string,
		service ServiceID,
		endpoint string,
		body any,
		params Params,
	) Envelope
}

// Gateway is the full client surface for both backend services.
type Gateway interface {
	Requester
	AuthAPI
	RoomAPI
}
