package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dormmatch/internal/domain"
	"dormmatch/internal/errors"
	"dormmatch/internal/logging"
)

// RoomAction selects what RoomsCommand does.
type RoomAction string

// Room actions.
const (
	RoomCreate RoomAction = "create"
	RoomSearch RoomAction = "search"
	RoomStats  RoomAction = "stats"
)

// RoomsCommand handles room creation and lookup.
type RoomsCommand struct {
	gateway domain.RoomAPI
	newID   func() string
	logger  *slog.Logger
}

// NewRoomsCommand creates a new rooms command.
func NewRoomsCommand(gateway domain.RoomAPI, logger *slog.Logger) *RoomsCommand {
	return &RoomsCommand{
		gateway: gateway,
		newID:   uuid.NewString,
		logger:  logging.WithOperation(logger, "rooms"),
	}
}

// RoomsRequest contains the parameters for the rooms command.
type RoomsRequest struct {
	Action RoomAction
	Room   domain.Room // create only
}

// Execute runs the rooms command.
func (c *RoomsCommand) Execute(ctx context.Context, req RoomsRequest) (domain.Envelope, error) {
	switch req.Action {
	case RoomCreate:
		room, err := c.prepareRoom(req.Room)
		if err != nil {
			return domain.Envelope{}, err
		}
		c.logger.InfoContext(ctx, "Creating room", "id", room.ID, "number", room.Number)
		return c.gateway.CreateRoom(ctx, room), nil
	case RoomSearch:
		c.logger.DebugContext(ctx, "Searching rooms")
		return c.gateway.SearchRooms(ctx), nil
	case RoomStats:
		c.logger.DebugContext(ctx, "Fetching room statistics")
		envelope := c.gateway.GetRoomStats(ctx)
		if !envelope.OK() {
			return envelope, nil
		}
		var stats domain.RoomStats
		if err := envelope.DecodeData(&stats); err != nil {
			c.logger.DebugContext(ctx, "Room statistics not in the expected shape", "error", err)
			return envelope, nil
		}
		envelope.Data = stats
		return envelope, nil
	default:
		return domain.Envelope{}, fmt.Errorf("unknown room action %q", req.Action)
	}
}

// prepareRoom fills defaults and validates a room before creation.
func (c *RoomsCommand) prepareRoom(room domain.Room) (domain.Room, error) {
	if room.ID == "" {
		room.ID = c.newID()
	} else if err := validateUUID("id", room.ID); err != nil {
		return room, err
	}

	if err := requireField("number", room.Number); err != nil {
		return room, err
	}
	if err := validatePositive("capacity", room.Capacity); err != nil {
		return room, err
	}
	if room.CurrentOccupants < 0 || room.CurrentOccupants > room.Capacity {
		return room, errors.NewValidationError("current_occupants", fmt.Sprint(room.CurrentOccupants), "range",
			fmt.Sprintf("must be between 0 and capacity (%d)", room.Capacity))
	}

	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if err := validateOneOf("status", room.Status, roomStatuses); err != nil {
		return room, err
	}

	if room.SexRestriction != "" {
		if err := validateOneOf("sex_restriction", room.SexRestriction, genders); err != nil {
			return room, err
		}
	}
	if room.CourseRestriction != nil {
		if err := validatePositive("course_restriction", *room.CourseRestriction); err != nil {
			return room, err
		}
	}
	return room, nil
}
