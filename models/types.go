// ABOUTME: Data models for travel-and-expense master data and applications
// ABOUTME: Defines typed records mirroring the backend REST resource schemas
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Master records carry backend-assigned numeric identifiers. An ID of zero
// means the record is an unsaved draft; create calls never send it.

type Company struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=100"`
	Code     string `json:"code" validate:"required,max=20"`
	Address  string `json:"address,omitempty" validate:"max=500"`
	IsActive bool   `json:"is_active"`
}

type Department struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name" validate:"required,max=100"`
	Code      string `json:"code,omitempty" validate:"max=20"`
	CompanyID int64  `json:"company" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

type Designation struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name" validate:"required,max=100"`
	DepartmentID int64  `json:"department" validate:"required"`
	GradeID      *int64 `json:"grade,omitempty"`
	IsActive     bool   `json:"is_active"`
}

type Country struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=100"`
	Code     string `json:"code" validate:"required,max=3"`
	IsActive bool   `json:"is_active"`
}

type State struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name" validate:"required,max=100"`
	CountryID int64  `json:"country" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

type City struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=100"`
	StateID  int64  `json:"state" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// Location is an office/site; it stores the full geography chain so list
// screens can filter without extra lookups.
type Location struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name" validate:"required,max=100"`
	Code      string `json:"code,omitempty" validate:"max=20"`
	CityID    int64  `json:"city" validate:"required"`
	StateID   int64  `json:"state,omitempty"`
	CountryID int64  `json:"country,omitempty"`
	Address   string `json:"address,omitempty" validate:"max=500"`
	IsActive  bool   `json:"is_active"`
}

type Grade struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=50"`
	Level    int    `json:"level" validate:"required,min=1"`
	IsActive bool   `json:"is_active"`
}

type TravelMode struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" validate:"required,max=50"`
	Kind     string `json:"kind" validate:"required,oneof=flight train car bus"`
	IsActive bool   `json:"is_active"`
}

// ApprovalMatrix binds a grade to an approver chain level and an amount
// band. One row per grade; the console can create many rows from a single
// shared payload (see screens.BatchCreate).
type ApprovalMatrix struct {
	ID                    int64  `json:"id,omitempty"`
	GradeID               int64  `json:"grade" validate:"required"`
	CompanyID             int64  `json:"company" validate:"required"`
	Level                 int    `json:"level" validate:"required,min=1"`
	ApproverDesignationID int64  `json:"approver_designation" validate:"required"`
	MinAmount             int64  `json:"min_amount"`
	MaxAmount             int64  `json:"max_amount"`
	EffectiveFrom         string `json:"effective_from,omitempty"`
	EffectiveTo           string `json:"effective_to,omitempty"`
	IsActive              bool   `json:"is_active"`
}

// ConveyanceRate amounts are minor currency units per kilometre.
type ConveyanceRate struct {
	ID            int64  `json:"id,omitempty"`
	TravelModeID  int64  `json:"travel_mode" validate:"required"`
	GradeID       int64  `json:"grade" validate:"required"`
	RatePerKM     int64  `json:"rate_per_km" validate:"required,min=1"`
	Currency      string `json:"currency" validate:"required,len=3"`
	EffectiveFrom string `json:"effective_from,omitempty"`
	EffectiveTo   string `json:"effective_to,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// Accommodation covers both hotels and guest houses; Kind selects which
// tab of the form applies. Tariffs are minor currency units per night.
type Accommodation struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name" validate:"required,max=100"`
	Kind         string `json:"kind" validate:"required,oneof=hotel guest_house"`
	CityID       int64  `json:"city" validate:"required"`
	Address      string `json:"address,omitempty" validate:"max=500"`
	ContactName  string `json:"contact_name,omitempty" validate:"max=100"`
	ContactPhone string `json:"contact_phone,omitempty" validate:"max=20"`
	TariffSingle int64  `json:"tariff_single,omitempty"`
	TariffDouble int64  `json:"tariff_double,omitempty"`
	ContractFrom string `json:"contract_from,omitempty"`
	ContractTo   string `json:"contract_to,omitempty"`
	IsActive     bool   `json:"is_active"`
}

type User struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	EmployeeCode  string `json:"employee_code" validate:"required,max=20"`
	CompanyID     int64  `json:"company" validate:"required"`
	DepartmentID  int64  `json:"department,omitempty"`
	DesignationID int64  `json:"designation,omitempty"`
	GradeID       int64  `json:"grade,omitempty"`
	LocationID    int64  `json:"location,omitempty"`
	IsAdmin       bool   `json:"is_admin"`
	IsActive      bool   `json:"is_active"`
}

type TravelApplication struct {
	ID            int64     `json:"id,omitempty"`
	ApplicantID   int64     `json:"applicant" validate:"required"`
	Purpose       string    `json:"purpose" validate:"required,max=500"`
	Status        string    `json:"status,omitempty"`
	FromDate      string    `json:"from_date" validate:"required"`
	ToDate        string    `json:"to_date" validate:"required"`
	AdvanceAmount int64     `json:"advance_amount,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}

// ItinerarySegment is one leg of a travel application. Date fields are
// wire strings (YYYY-MM-DD); which one is populated depends on the segment
// type, hence the fallback chain in the itinerary package.
type ItinerarySegment struct {
	ID            int64  `json:"id,omitempty"`
	ApplicationID int64  `json:"application,omitempty"`
	Type          string `json:"type"`
	Date          string `json:"date,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	FromCity      string `json:"from_city,omitempty"`
	ToCity        string `json:"to_city,omitempty"`
	TravelModeID  int64  `json:"travel_mode,omitempty"`
	BookingID     int64  `json:"booking,omitempty"`
	Details       string `json:"details,omitempty"`
}

type BookingDetail struct {
	ID           int64  `json:"id,omitempty"`
	Reference    string `json:"reference"`
	Vendor       string `json:"vendor,omitempty"`
	Status       string `json:"status,omitempty"`
	Amount       int64  `json:"amount,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`
}

// Segment types.
const (
	SegmentFlight = "flight"
	SegmentTrain  = "train"
	SegmentCar    = "car"
	SegmentHotel  = "hotel"
)

// Travel application statuses.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusClosed    = "closed"
)

// Accommodation kinds.
const (
	KindHotel      = "hotel"
	KindGuestHouse = "guest_house"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on a record before submission. Only
// presence and shape checks live here; uniqueness and cross-field rules
// belong to the backend.
func Validate(record any) error {
	return validate.Struct(record)
}

// DateRangeActive reports whether today falls inside a [from, to] range of
// YYYY-MM-DD wire dates. An empty bound is open-ended. A malformed date
// makes the range inactive rather than erroring; this is display logic
// only and the backend stays authoritative.
func DateRangeActive(from, to string, today time.Time) bool {
	day := today.Format("2006-01-02")
	if from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			return false
		}
		if day < from {
			return false
		}
	}
	if to != "" {
		if _, err := time.Parse("2006-01-02", to); err != nil {
			return false
		}
		if day > to {
			return false
		}
	}
	return true
}
