package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the volatile fallback backend. It is process-local, keyed by
// enterprise email, and owned by whoever constructs it.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]*Booking
	now  func() time.Time
}

// NewMemoryStore creates an empty fallback store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]*Booking),
		now:  time.Now,
	}
}

// NewLocalID synthesizes local_<unix millis>_<9 random chars>.
func NewLocalID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s%d_%s", LocalIDPrefix, now.UnixMilli(), suffix)
}

func (s *MemoryStore) Find(ctx context.Context, enterpriseEmail string, eq map[string]string) ([]*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(enterpriseEmail, eq), nil
}

func (s *MemoryStore) findLocked(enterpriseEmail string, eq map[string]string) []*Booking {
	var out []*Booking
	for _, b := range s.data[enterpriseEmail] {
		if matchesEqualities(b, eq) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// Insert stores b without any conflict check.
func (s *MemoryStore) Insert(ctx context.Context, b *Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(b), nil
}

// InsertIfFree runs conflicts against the enterprise's bookings and inserts b
// only when it returns false, all under one lock. It returns the stored copy.
func (s *MemoryStore) InsertIfFree(ctx context.Context, b *Booking, conflicts func(existing []*Booking) bool) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conflicts(s.findLocked(b.EnterpriseEmail, nil)) {
		return nil, ErrSlotConflict
	}
	stored := b.Clone()
	stored.ID = s.insertLocked(b)
	return stored, nil
}

func (s *MemoryStore) insertLocked(b *Booking) string {
	c := b.Clone()
	if c.ID == "" {
		c.ID = NewLocalID(s.now())
	}
	s.data[c.EnterpriseEmail] = append(s.data[c.EnterpriseEmail], c)
	return c.ID
}

// UpdateStatus changes a booking's status. Reviving a cancelled booking is
// rejected with ErrSlotConflict when another live booking took its slot.
func (s *MemoryStore) UpdateStatus(ctx context.Context, enterpriseEmail, id string, status Status, updatedAt string) error {
	return s.UpdateStatusIfFree(ctx, enterpriseEmail, id, status, updatedAt, func(existing []*Booking, candidate *Booking) bool {
		return HasConflict(existing, candidate.StaffID, candidate.Date, candidate.StartTime)
	})
}

// UpdateStatusIfFree is UpdateStatus with a caller-supplied conflict rule.
// conflicts sees the enterprise's other bookings and the booking with its
// new status, all under one lock.
func (s *MemoryStore) UpdateStatusIfFree(ctx context.Context, enterpriseEmail, id string, status Status, updatedAt string, conflicts func(existing []*Booking, candidate *Booking) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.data[enterpriseEmail]
	for i, b := range list {
		if b.ID != id {
			continue
		}
		if b.Status == StatusCancelled && status != StatusCancelled {
			candidate := b.Clone()
			candidate.Status = status

			others := make([]*Booking, 0, len(list)-1)
			others = append(others, list[:i]...)
			others = append(others, list[i+1:]...)
			if conflicts(others, candidate) {
				return ErrSlotConflict
			}
		}
		b.Status = status
		b.UpdatedAt = updatedAt
		return nil
	}
	return ErrNotFound
}

func (s *MemoryStore) Delete(ctx context.Context, enterpriseEmail, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.data[enterpriseEmail]
	for i, b := range list {
		if b.ID == id {
			s.data[enterpriseEmail] = append(list[:i], list[i+1:]...)
			if len(s.data[enterpriseEmail]) == 0 {
				delete(s.data, enterpriseEmail)
			}
			return nil
		}
	}
	return ErrNotFound
}

// Len returns the number of bookings held for one enterprise.
func (s *MemoryStore) Len(enterpriseEmail string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[enterpriseEmail])
}

// Counts returns the number of held bookings per enterprise.
func (s *MemoryStore) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.data))
	for k, v := range s.data {
		out[k] = len(v)
	}
	return out
}

func matchesEqualities(b *Booking, eq map[string]string) bool {
	for field, want := range eq {
		if fieldValue(b, field) != want {
			return false
		}
	}
	return true
}

func fieldValue(b *Booking, field string) string {
	switch field {
	case "staffId":
		return b.StaffID
	case "date":
		return b.Date
	case "startTime":
		return b.StartTime
	case "status":
		return string(b.Status)
	case "productId":
		return b.ProductID
	case "clientPhone":
		return b.ClientPhone
	}
	return ""
}
