package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dormmatch/internal/domain"
	"dormmatch/internal/logging"
	"dormmatch/internal/services/session"
)

// ApplicationAction selects what ApplicationsCommand does.
type ApplicationAction string

// Application actions.
const (
	ApplicationApply      ApplicationAction = "apply"
	ApplicationList       ApplicationAction = "list"
	ApplicationApprove    ApplicationAction = "approve"
	ApplicationReject     ApplicationAction = "reject"
	ApplicationAutoAssign ApplicationAction = "auto-assign"
)

// ApplicationsCommand handles room applications.
type ApplicationsCommand struct {
	gateway domain.RoomAPI
	tokens  domain.TokenSource
	logger  *slog.Logger
}

// NewApplicationsCommand creates a new applications command.
func NewApplicationsCommand(gateway domain.RoomAPI, tokens domain.TokenSource, logger *slog.Logger) *ApplicationsCommand {
	return &ApplicationsCommand{
		gateway: gateway,
		tokens:  tokens,
		logger:  logging.WithOperation(logger, "applications"),
	}
}

// ApplicationsRequest contains the parameters for the applications command.
// An empty UserID defaults to the subject of the stored token.
type ApplicationsRequest struct {
	Action        ApplicationAction
	UserID        string
	RoomID        string
	ApplicationID string
	Comment       string
	Status        string // list only; keeps applications in this status
}

// Execute runs the applications command.
func (c *ApplicationsCommand) Execute(ctx context.Context, req ApplicationsRequest) (domain.Envelope, error) {
	switch req.Action {
	case ApplicationApply:
		userID, err := c.userID(ctx, req.UserID)
		if err != nil {
			return domain.Envelope{}, err
		}
		if err := validateUUID("room_id", req.RoomID); err != nil {
			return domain.Envelope{}, err
		}
		c.logger.InfoContext(ctx, "Applying for room", "user_id", userID, "room_id", req.RoomID)
		return c.gateway.ApplyForRoom(ctx, userID, req.RoomID), nil

	case ApplicationList:
		userID, err := c.userID(ctx, req.UserID)
		if err != nil {
			return domain.Envelope{}, err
		}
		if req.Status != "" {
			if err := validateOneOf("status", req.Status, applicationStatuses); err != nil {
				return domain.Envelope{}, err
			}
		}
		c.logger.DebugContext(ctx, "Listing applications", "user_id", userID, "status", req.Status)
		return c.listApplications(ctx, userID, req.Status)

	case ApplicationApprove, ApplicationReject:
		if err := validateUUID("application_id", req.ApplicationID); err != nil {
			return domain.Envelope{}, err
		}
		c.logger.InfoContext(ctx, "Reviewing application",
			"application_id", req.ApplicationID,
			"decision", req.Action)
		if req.Action == ApplicationApprove {
			return c.gateway.ApproveApplication(ctx, req.ApplicationID, req.Comment), nil
		}
		return c.gateway.RejectApplication(ctx, req.ApplicationID, req.Comment), nil

	case ApplicationAutoAssign:
		userID, err := c.userID(ctx, req.UserID)
		if err != nil {
			return domain.Envelope{}, err
		}
		c.logger.InfoContext(ctx, "Requesting automatic room assignment", "user_id", userID)
		return c.gateway.AutoAssignRoom(ctx, userID), nil

	default:
		return domain.Envelope{}, fmt.Errorf("unknown application action %q", req.Action)
	}
}

// listApplications returns the applications as typed values. A payload in
// an unexpected shape is passed through untouched unless a status filter
// needs to read it.
func (c *ApplicationsCommand) listApplications(
	ctx context.Context,
	userID string,
	status string,
) (domain.Envelope, error) {
	envelope := c.gateway.GetApplications(ctx, userID)
	if !envelope.OK() {
		return envelope, nil
	}

	var applications []domain.Application
	if err := envelope.DecodeData(&applications); err != nil {
		if status != "" {
			return domain.Envelope{}, fmt.Errorf("failed to decode applications: %w", err)
		}
		c.logger.DebugContext(ctx, "Applications not in the expected shape", "error", err)
		return envelope, nil
	}

	kept := make([]domain.Application, 0, len(applications))
	for _, application := range applications {
		if status == "" || application.Status == status {
			kept = append(kept, application)
		}
	}
	envelope.Data = kept
	return envelope, nil
}

func (c *ApplicationsCommand) userID(ctx context.Context, explicit string) (string, error) {
	userID := explicit
	if userID == "" {
		var err error
		userID, err = session.UserID(ctx, c.tokens)
		if err != nil {
			return "", fmt.Errorf("failed to determine user id: %w", err)
		}
	}
	if err := validateUUID("user_id", userID); err != nil {
		return "", err
	}
	return userID, nil
}
