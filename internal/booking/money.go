package booking

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PabloST8/xcorte-sub001/internal/pkg/apperror"
)

var (
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "invalid price")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "invalid duration")
)

const currencySymbol = "R$"

const (
	// MaxPriceCents is the largest accepted price.
	MaxPriceCents = math.MaxInt64 / 100
	// MaxDuration is one day, in minutes.
	MaxDuration = 24 * 60
)

// FormatPrice renders cents the way the storefront shows prices:
// 3000 -> "R$ 30,00", 123456 -> "R$ 1.234,56".
func FormatPrice(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	units := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s %s,%02d", currencySymbol, grouped.String(), cents%100)
}

// ParsePrice converts a human price ("R$ 30,00", "30.5", "1.234,56", "45")
// into cents. Negative amounts are rejected.
func ParsePrice(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, currencySymbol)
	s = strings.TrimPrefix(s, "$")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidPrice
	}

	var whole, frac string
	switch {
	case strings.Contains(s, ","):
		// 1.234,56: dots group thousands, the comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		whole, frac, _ = strings.Cut(s, ",")
	case strings.Count(s, ".") == 1 && len(s)-strings.Index(s, ".")-1 <= 2:
		whole, frac, _ = strings.Cut(s, ".")
	default:
		whole = strings.ReplaceAll(s, ".", "")
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return 0, ErrInvalidPrice
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, _ := strconv.ParseInt(frac[:2], 10, 64)
	if len(frac) > 2 && frac[2] >= '5' {
		cents++
	}
	if units > (MaxPriceCents-cents)/100 {
		return 0, ErrInvalidPrice
	}
	return units*100 + cents, nil
}

var durationPattern = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*(?:min|m)?)?$`)

// FormatDuration renders minutes as "45min", "1h" or "1h 30min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dmin", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dmin", h, m)
	}
}

// ParseDuration accepts "90", "90min", "2h", "1h30" and "1h 30min", up to
// MaxDuration.
func ParseDuration(raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, ErrInvalidDuration
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, ErrInvalidDuration
	}
	total := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil || h > MaxDuration/60 {
			return 0, ErrInvalidDuration
		}
		total += h * 60
	}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n > MaxDuration {
			return 0, ErrInvalidDuration
		}
		total += n
	}
	if total > MaxDuration {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// DigitsOnly strips everything but 0-9, used for phone numbers.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
