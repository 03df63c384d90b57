package booking

import "strings"

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Statuses lists the canonical lifecycle states in display order.
var Statuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// aliases maps legacy and localized spellings onto canonical statuses.
var aliases = map[string]Status{
	"canceled":   StatusCancelled,
	"agendado":   StatusScheduled,
	"confirmado": StatusConfirmed,
	"concluido":  StatusCompleted,
	"concluído":  StatusCompleted,
	"cancelado":  StatusCancelled,
}

// labels is the inverse of the localized part of aliases. It must stay
// invertible: Normalize(Localize(s)) == s for every key.
var labels = map[Status]string{
	StatusScheduled: "agendado",
	StatusConfirmed: "confirmado",
	StatusCompleted: "concluido",
	StatusCancelled: "cancelado",
}

// IsCanonical reports whether s is one of the six lifecycle states.
func IsCanonical(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Normalize maps a raw status onto the canonical vocabulary. Unknown values
// are returned unchanged (trimmed), so callers that must store the result
// should use ParseStatus instead.
func Normalize(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s := Status(key); IsCanonical(s) {
		return s
	}
	if s, ok := aliases[key]; ok {
		return s
	}
	return Status(strings.TrimSpace(raw))
}

// ParseStatus normalizes raw and rejects anything outside the canonical set.
// An empty value yields StatusScheduled.
func ParseStatus(raw string) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return StatusScheduled, nil
	}
	s := Normalize(raw)
	if !IsCanonical(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Localize returns the localized label for s, or the canonical value itself
// when no label exists.
func Localize(s Status) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}
