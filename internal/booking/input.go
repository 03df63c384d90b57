package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value holds a loosely typed JSON scalar. Clients send numbers as strings
// and strings as numbers, so the raw text is kept and interpreted per field.
type Value struct {
	Raw    string
	Set    bool
	Number bool
}

// V builds a string Value, mostly for callers that construct input in code.
func V(s string) Value {
	return Value{Raw: s, Set: true}
}

// N builds a numeric Value.
func N(n float64) Value {
	return Value{Raw: strconv.FormatFloat(n, 'f', -1, 64), Set: true, Number: true}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Value{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{Raw: s, Set: true}
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a scalar, got %s", data)
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*v = Value{Raw: string(data), Set: true}
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		*v = Value{Raw: string(data), Set: true, Number: true}
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	if v.Number {
		return []byte(v.Raw), nil
	}
	return json.Marshal(v.Raw)
}

// String returns the trimmed text of the value.
func (v Value) String() string {
	return strings.TrimSpace(v.Raw)
}

// IsZero reports an absent or blank value.
func (v Value) IsZero() bool {
	return !v.Set || v.String() == ""
}

// RawInput is the booking payload as clients send it. Several fields have a
// legacy spelling (price vs productPrice, time vs startTime); the canonical
// one wins when both are present.
type RawInput struct {
	ClientName       Value `json:"clientName"`
	CustomerName     Value `json:"customerName"`
	ClientPhone      Value `json:"clientPhone"`
	Phone            Value `json:"phone"`
	ClientEmail      Value `json:"clientEmail"`
	Email            Value `json:"email"`
	StaffID          Value `json:"staffId"`
	ProfessionalID   Value `json:"professionalId"`
	StaffName        Value `json:"staffName"`
	ProfessionalName Value `json:"professionalName"`
	ProductID        Value `json:"productId"`
	ServiceID        Value `json:"serviceId"`
	ProductName      Value `json:"productName"`
	ServiceName      Value `json:"serviceName"`
	ProductPrice     Value `json:"productPrice"`
	Price            Value `json:"price"`
	ProductDuration  Value `json:"productDuration"`
	Duration         Value `json:"duration"`
	Date             Value `json:"date"`
	StartTime        Value `json:"startTime"`
	Time             Value `json:"time"`
	EndTime          Value `json:"endTime"`
	Status           Value `json:"status"`
	Notes            Value `json:"notes"`
}

func first(vals ...Value) Value {
	for _, v := range vals {
		if !v.IsZero() {
			return v
		}
	}
	return Value{}
}

// NormalizeInput maps a raw payload onto the canonical Booking shape. It
// validates required fields but touches no store; ID is left empty.
func NormalizeInput(enterpriseEmail string, in RawInput, now time.Time) (*Booking, error) {
	enterprise := NormalizeEnterprise(enterpriseEmail)
	if enterprise == "" {
		return nil, ErrEnterpriseRequired
	}

	name := first(in.ClientName, in.CustomerName).String()
	if name == "" {
		return nil, ErrClientNameRequired
	}
	phone := DigitsOnly(first(in.ClientPhone, in.Phone).String())
	if phone == "" {
		return nil, ErrClientPhoneRequired
	}

	date, err := normalizeDate(in.Date.String())
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(in.Status.String())
	if err != nil {
		return nil, err
	}

	price, err := coercePrice(in.ProductPrice, in.Price)
	if err != nil {
		return nil, err
	}
	duration, err := coerceDuration(first(in.ProductDuration, in.Duration))
	if err != nil {
		return nil, err
	}

	start, ok := normalizeClock(first(in.StartTime, in.Time).String())
	if !ok {
		start = DefaultTime
	}
	end, ok := normalizeClock(in.EndTime.String())
	if !ok {
		end = DefaultTime
		if duration > 0 {
			end = addMinutes(start, duration)
		}
	}

	ts := now.UTC().Format(time.RFC3339)
	return &Booking{
		EnterpriseEmail: enterprise,
		ClientName:      name,
		ClientPhone:     phone,
		ClientEmail:     strings.ToLower(first(in.ClientEmail, in.Email).String()),
		StaffID:         first(in.StaffID, in.ProfessionalID).String(),
		StaffName:       first(in.StaffName, in.ProfessionalName).String(),
		ProductID:       first(in.ProductID, in.ServiceID).String(),
		ProductName:     first(in.ProductName, in.ServiceName).String(),
		ProductPrice:    price,
		ProductDuration: duration,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
		Notes:           in.Notes.String(),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}, nil
}

// normalizeDate accepts YYYY-MM-DD, optionally followed by a time part
// ("2025-03-10T12:00:00Z"), and returns the zero-padded date.
func normalizeDate(s string) (string, error) {
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// normalizeClock accepts "9:00", "09:00" and "09:00:00".
func normalizeClock(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, layout := range []string{TimeLayout, "15:04:05", "3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), true
		}
	}
	return "", false
}

// addMinutes adds minutes to an HH:MM clock, clamping at 23:59.
func addMinutes(clock string, minutes int) string {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return clock
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	if end.Day() != t.Day() {
		return "23:59"
	}
	return end.Format(TimeLayout)
}

// clockMinutes converts HH:MM into minutes after midnight.
func clockMinutes(clock string) (int, bool) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// coercePrice reads productPrice when present and the legacy price key
// otherwise. JSON numbers under productPrice are cents, numbers under price
// are currency units, and strings are formatted prices in currency units.
func coercePrice(canonical, legacy Value) (int64, error) {
	switch {
	case !canonical.IsZero():
		if canonical.Number {
			return numberToCents(canonical, 1)
		}
		return ParsePrice(canonical.String())
	case !legacy.IsZero():
		if legacy.Number {
			return numberToCents(legacy, 100)
		}
		return ParsePrice(legacy.String())
	}
	return 0, nil
}

func numberToCents(v Value, scale float64) (int64, error) {
	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(f * scale)
	if cents > MaxPriceCents {
		return 0, ErrInvalidPrice
	}
	return int64(cents), nil
}

// coerceDuration treats numbers as minutes and strings as "1h 30min".
func coerceDuration(v Value) (int, error) {
	if v.IsZero() {
		return 0, nil
	}
	if v.Number {
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil || math.IsNaN(f) || f < 0 || f > MaxDuration {
			return 0, ErrInvalidDuration
		}
		return int(math.Round(f)), nil
	}
	return ParseDuration(v.String())
}
