package booking

import (
	"net/http"
	"strings"

	"github.com/PabloST8/xcorte-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotConflict        = apperror.New(http.StatusConflict, "a booking already exists for this professional at this time")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrClientNameRequired  = apperror.New(http.StatusBadRequest, "client name is required")
	ErrClientPhoneRequired = apperror.New(http.StatusBadRequest, "client phone is required")
	ErrInvalidDate         = apperror.New(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	ErrInvalidDateFilter   = apperror.New(http.StatusBadRequest, "invalid date filter")
	ErrEnterpriseRequired  = apperror.New(http.StatusBadRequest, "enterprise email is required")
	ErrPersistence         = apperror.New(http.StatusInternalServerError, "could not save the booking, please try again")
)

const (
	// DateLayout is the calendar date format stored on every booking.
	DateLayout = "2006-01-02"
	// TimeLayout is the 24-hour clock format for start and end times.
	TimeLayout = "15:04"
	// DefaultTime replaces an absent or malformed start time.
	DefaultTime = "09:00"
	// LocalIDPrefix marks identifiers synthesized by the fallback store.
	LocalIDPrefix = "local_"
)

// Booking is one appointment of a client with a staff member for a product
// (service). Product fields are copied at booking time so later catalog
// edits do not rewrite history.
type Booking struct {
	ID              string `json:"id"`
	EnterpriseEmail string `json:"enterpriseEmail"`
	ClientName      string `json:"clientName"`
	ClientPhone     string `json:"clientPhone"`
	ClientEmail     string `json:"clientEmail"`
	StaffID         string `json:"staffId"`
	StaffName       string `json:"staffName"`
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	ProductPrice    int64  `json:"productPrice"`    // cents
	ProductDuration int    `json:"productDuration"` // minutes
	Date            string `json:"date"`            // YYYY-MM-DD
	StartTime       string `json:"startTime"`       // HH:MM
	EndTime         string `json:"endTime"`         // HH:MM
	Status          Status `json:"status"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// IsLocal reports whether the booking was written by the fallback store.
func (b *Booking) IsLocal() bool {
	return IsLocalID(b.ID)
}

// Clone returns a copy that callers may mutate freely.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}

// IsLocalID reports whether id carries the reserved fallback prefix.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// CollectionPath returns the document collection that holds an
// enterprise's bookings.
func CollectionPath(enterpriseEmail string) string {
	return "enterprises/" + enterpriseEmail + "/bookings"
}

// NormalizeEnterprise lower-cases and trims a tenant key so that
// "Shop@Mail.com " and "shop@mail.com" address the same partition.
func NormalizeEnterprise(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Filter narrows a listing. Empty fields and the keyword "all" disable the
// corresponding filter.
type Filter struct {
	Date   string // all, today, tomorrow, week, month, upcoming or YYYY-MM-DD
	Status string
	Search string
}
