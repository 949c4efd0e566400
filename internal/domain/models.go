package domain

import "time"

// Gender values accepted by the auth service.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Wake types describe a student's daily rhythm.
const (
	WakeEarlyBird = "early_bird"
	WakeNightOwl  = "night_owl"
	WakeFlexible  = "flexible"
)

// Room statuses tracked by the room-management service.
const (
	RoomAvailable = "available"
	RoomOccupied  = "occupied"
	RoomReserved  = "reserved"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Roles carried in access tokens.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for creating a student account and profile.
type Registration struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Faculty   string   `json:"faculty"`
	Course    int      `json:"course"`
	Gender    string   `json:"gender"`
	Age       int      `json:"age"`
	WakeHours string   `json:"wake_hours"`
	Hobbies   []string `json:"hobbies"`
	MBTI      *string  `json:"mbti,omitempty"`
}

// ProfileUpdate is a partial profile; nil fields are left untouched.
type ProfileUpdate struct {
	Faculty   *string  `json:"faculty,omitempty"`
	Course    *int     `json:"course,omitempty"`
	Gender    *string  `json:"gender,omitempty"`
	Age       *int     `json:"age,omitempty"`
	WakeHours *string  `json:"wake_hours,omitempty"`
	Hobbies   []string `json:"hobbies,omitempty"`
	MBTI      *string  `json:"mbti,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Faculty == nil && p.Course == nil && p.Gender == nil && p.Age == nil &&
		p.WakeHours == nil && p.Hobbies == nil && p.MBTI == nil
}

// Room is a dormitory room as stored by the room-management service.
type Room struct {
	ID                 string  `json:"id" yaml:"id"`
	Number             string  `json:"number" yaml:"number"`
	Description        string  `json:"description" yaml:"description"`
	PhotoURL           *string `json:"photo_url" yaml:"photo_url"`
	Capacity           int     `json:"capacity" yaml:"capacity"`
	CurrentOccupants   int     `json:"current_occupants" yaml:"current_occupants"`
	FacultyRestriction *string `json:"faculty_restriction" yaml:"faculty_restriction"`
	CourseRestriction  *int    `json:"course_restriction" yaml:"course_restriction"`
	SexRestriction     string  `json:"sex_restriction" yaml:"sex_restriction"`
	Status             string  `json:"status" yaml:"status"`
}

// Application is a student's request to be placed in a room.
type Application struct {
	ID        string    `json:"id"         yaml:"id"`
	UserID    string    `json:"user_id"    yaml:"user_id"`
	RoomID    string    `json:"room_id"    yaml:"room_id"`
	Status    string    `json:"status"     yaml:"status"`
	Comment   *string   `json:"comment"    yaml:"comment"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RoomStats summarizes occupancy and pending work.
type RoomStats struct {
	AvailableRooms      int64 `json:"available_rooms"      yaml:"available_rooms"`
	OccupiedRooms       int64 `json:"occupied_rooms"       yaml:"occupied_rooms"`
	ReservedRooms       int64 `json:"reserved_rooms"       yaml:"reserved_rooms"`
	PendingApplications int64 `json:"pending_applications" yaml:"pending_applications"`
}
