package http

import (
	"github.com/PabloST8/xcorte-sub001/internal/booking"
)

// CreateBookingRequest is the public booking payload. Field spellings and
// value types are loose, see booking.RawInput.
type CreateBookingRequest = booking.RawInput

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	Date   string `form:"date"`
	Status string `form:"status"`
	Search string `form:"search" binding:"max=200"`
}

// Filter converts the query into a booking filter.
func (r *ListBookingsRequest) Filter() booking.Filter {
	return booking.Filter{
		Date:   r.Date,
		Status: r.Status,
		Search: r.Search,
	}
}

// UpdateStatusRequest changes only the status of a booking. Localized labels
// ("Confirmado") and legacy spellings are accepted.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID                       string         `json:"id"`
	EnterpriseEmail          string         `json:"enterpriseEmail"`
	ClientName               string         `json:"clientName"`
	ClientPhone              string         `json:"clientPhone"`
	ClientEmail              string         `json:"clientEmail,omitempty"`
	StaffID                  string         `json:"staffId"`
	StaffName                string         `json:"staffName"`
	ProductID                string         `json:"productId"`
	ProductName              string         `json:"productName"`
	ProductPrice             int64          `json:"productPrice"`
	ProductPriceFormatted    string         `json:"productPriceFormatted"`
	ProductDuration          int            `json:"productDuration"`
	ProductDurationFormatted string         `json:"productDurationFormatted"`
	Date                     string         `json:"date"`
	StartTime                string         `json:"startTime"`
	EndTime                  string         `json:"endTime"`
	Status                   booking.Status `json:"status"`
	StatusLabel              string         `json:"statusLabel"`
	Notes                    string         `json:"notes,omitempty"`
	Local                    bool           `json:"local"`
	CreatedAt                string         `json:"createdAt"`
	UpdatedAt                string         `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                       b.ID,
		EnterpriseEmail:          b.EnterpriseEmail,
		ClientName:               b.ClientName,
		ClientPhone:              b.ClientPhone,
		ClientEmail:              b.ClientEmail,
		StaffID:                  b.StaffID,
		StaffName:                b.StaffName,
		ProductID:                b.ProductID,
		ProductName:              b.ProductName,
		ProductPrice:             b.ProductPrice,
		ProductPriceFormatted:    booking.FormatPrice(b.ProductPrice),
		ProductDuration:          b.ProductDuration,
		ProductDurationFormatted: booking.FormatDuration(b.ProductDuration),
		Date:                     b.Date,
		StartTime:                b.StartTime,
		EndTime:                  b.EndTime,
		Status:                   b.Status,
		StatusLabel:              booking.Localize(b.Status),
		Notes:                    b.Notes,
		Local:                    b.IsLocal(),
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}
