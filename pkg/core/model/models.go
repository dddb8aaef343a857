package model

import "time"

type Role string

const (
	RoleDonor     Role = "DONOR"
	RoleRequester Role = "REQUESTER"
)

func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleRequester
}

type BloodGroup string

const (
	BloodGroupA  BloodGroup = "A"
	BloodGroupB  BloodGroup = "B"
	BloodGroupAB BloodGroup = "AB"
	BloodGroupO  BloodGroup = "O"
)

func (g BloodGroup) IsValid() bool {
	switch g {
	case BloodGroupA, BloodGroupB, BloodGroupAB, BloodGroupO:
		return true
	}
	return false
}

type RhFactor string

const (
	RhPositive RhFactor = "+"
	RhNegative RhFactor = "-"
)

func (f RhFactor) IsValid() bool {
	return f == RhPositive || f == RhNegative
}

// BloodType is an immutable value type compared by structural equality
type BloodType struct {
	Group    BloodGroup
	RhFactor RhFactor
}

func (b BloodType) Equal(other BloodType) bool {
	return b.Group == other.Group && b.RhFactor == other.RhFactor
}

func (b BloodType) String() string {
	return string(b.Group) + string(b.RhFactor)
}

type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

// Rank returns the severity ordering of an urgency level, Critical highest
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

type DonationStatus string

const (
	DonationScheduled DonationStatus = "Scheduled"
	DonationCompleted DonationStatus = "Completed"
	DonationCancelled DonationStatus = "Cancelled"
)

// DeferralAppointmentScheduled is the deferral reason recorded on a donor
// when an appointment is booked against them. It shares the DeferralReason
// field with health deferrals.
const DeferralAppointmentScheduled = "Appointment Scheduled"

// User represents a donor or requester account
type User struct {
	ID       string
	Name     string
	Email    string
	Location string
	Role     Role

	// BloodType is nil for users who have not completed donor profiling
	BloodType *BloodType

	// IsAvailable and DeferralReason only carry meaning for donors.
	// DeferralReason is non-nil only when IsAvailable is false; the inverse
	// is not enforced (a donor can be unavailable without a recorded reason).
	IsAvailable    bool
	DeferralReason *string

	IsVerified bool
	Badges     []string // badge ids referencing the badge catalog
	Points     int
}

// DonationRequest is a requester's ask for blood. Immutable once created.
type DonationRequest struct {
	ID            string
	Requester     User
	BloodType     BloodType
	UnitsRequired int
	Location      string
	Urgency       Urgency
	CreatedAt     time.Time
	Note          string
	PointsOffered int
}

// BloodDriveEvent is a scheduled community blood drive. Immutable once created.
type BloodDriveEvent struct {
	ID          string
	Title       string
	Description string
	Location    string
	Date        time.Time
	Organizer   string
}

// Donation is a historical or scheduled donation record
type Donation struct {
	ID        string
	DonorID   string
	Date      time.Time
	Location  string
	BloodType BloodType
	Units     int
	Status    DonationStatus
}

// ChatMessage is immutable once appended to a session
type ChatMessage struct {
	ID        string
	SenderID  string
	Text      string
	Timestamp time.Time
}

// ChatSession is a conversation between exactly two users, unique by the
// unordered participant pair. Messages are append-only and chronological.
type ChatSession struct {
	ID           string
	Participants [2]User
	Messages     []ChatMessage
}

// HasParticipant reports whether the given user id is one of the session's
// two participants
func (s *ChatSession) HasParticipant(userID string) bool {
	return s.Participants[0].ID == userID || s.Participants[1].ID == userID
}

// Counterpart returns the other participant of the session relative to the
// given user id
func (s *ChatSession) Counterpart(userID string) User {
	if s.Participants[0].ID == userID {
		return s.Participants[1]
	}
	return s.Participants[0]
}

// Badge is an entry in the static badge catalog. Users reference badges by
// id through User.Badges.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
}
