package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// errStoreUnavailable marks primary failures. It only reaches the log.
var (
	errStoreUnavailable = errors.New("primary store unavailable")
	errNoSession        = fmt.Errorf("%w: no session", errStoreUnavailable)
)

// SessionProvider reports whether a primary-store session is established.
// auth.PoolSession and auth.StaticSession implement it.
type SessionProvider interface {
	HasSession(ctx context.Context) bool
}

// FallbackObserver is told every time an operation is served by the
// fallback store. reason is "no_session" or "primary_error".
type FallbackObserver interface {
	ObserveFallback(operation, reason string)
}

type Service interface {
	Create(ctx context.Context, enterpriseEmail string, in RawInput) (*Booking, error)
	List(ctx context.Context, enterpriseEmail string, filter Filter) ([]*Booking, error)
	UpdateStatus(ctx context.Context, enterpriseEmail, id, status string) error
	Remove(ctx context.Context, enterpriseEmail, id string) error
	// PendingLocal counts bookings held only by the fallback store.
	PendingLocal() map[string]int
}

// Options tune a Service. Zero values pick the defaults.
type Options struct {
	Validator Validator
	Location  *time.Location
	Now       func() time.Time
	Observer  FallbackObserver
}

type service struct {
	primary   Store
	fallback  *MemoryStore
	session   SessionProvider
	validator Validator
	loc       *time.Location
	now       func() time.Time
	observer  FallbackObserver
}

func NewService(primary Store, fallback *MemoryStore, session SessionProvider, opts Options) Service {
	s := &service{
		primary:   primary,
		fallback:  fallback,
		session:   session,
		validator: opts.Validator,
		loc:       opts.Location,
		now:       opts.Now,
		observer:  opts.Observer,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.validator.Mode == "" {
		s.validator.Mode = ConflictExact
	}
	return s
}

func (s *service) Create(ctx context.Context, enterpriseEmail string, in RawInput) (*Booking, error) {
	// 1. Normalize and validate before touching any store
	b, err := NormalizeInput(enterpriseEmail, in, s.now())
	if err != nil {
		return nil, err
	}

	// 2. Primary store
	if s.primaryReady(ctx, "create") {
		created, err := s.createPrimary(ctx, b)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
		s.degrade("create", b.EnterpriseEmail, err)
	}

	// 3. Fallback store, check-then-insert under its lock
	created, err := s.fallback.InsertIfFree(ctx, b, func(existing []*Booking) bool {
		return s.validator.Conflicts(existing, b)
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}

func (s *service) createPrimary(ctx context.Context, b *Booking) (*Booking, error) {
	existing, err := s.primary.Find(ctx, b.EnterpriseEmail, s.validator.conflictQuery(b))
	if err != nil {
		return nil, fmt.Errorf("%w: find conflicts: %v", errStoreUnavailable, err)
	}
	// Bookings taken during an outage are still live and are not in the
	// primary index.
	local, err := s.fallback.Find(ctx, b.EnterpriseEmail, s.validator.conflictQuery(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if s.validator.Conflicts(append(existing, local...), b) {
		return nil, ErrSlotConflict
	}

	id, err := s.primary.Insert(ctx, b)
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: insert: %v", errStoreUnavailable, err)
	}

	created := b.Clone()
	created.ID = id
	return created, nil
}

func (s *service) List(ctx context.Context, enterpriseEmail string, filter Filter) ([]*Booking, error) {
	enterprise := NormalizeEnterprise(enterpriseEmail)
	if enterprise == "" {
		return nil, ErrEnterpriseRequired
	}
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	local, err := s.fallback.Find(ctx, enterprise, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	records := local
	if s.primaryReady(ctx, "list") {
		remote, err := s.primary.Find(ctx, enterprise, pushdown(filter))
		if err != nil {
			s.degrade("list", enterprise, err)
		} else {
			// Bookings written during an outage stay visible until they are
			// reconciled into the primary store.
			records = append(remote, local...)
		}
	}

	return ApplyFilter(records, filter, s.today()), nil
}

// pushdown returns the equality filters the primary store evaluates itself.
func pushdown(f Filter) map[string]string {
	eq := map[string]string{}
	if d := strings.TrimSpace(f.Date); d != "" {
		if _, err := time.Parse(DateLayout, d); err == nil {
			eq["date"] = d
		}
	}
	if st := Normalize(f.Status); IsCanonical(st) {
		eq["status"] = string(st)
	}
	return eq
}

func (s *service) UpdateStatus(ctx context.Context, enterpriseEmail, id, status string) error {
	enterprise := NormalizeEnterprise(enterpriseEmail)
	if enterprise == "" {
		return ErrEnterpriseRequired
	}
	if strings.TrimSpace(status) == "" {
		return ErrInvalidStatus
	}
	st, err := ParseStatus(status)
	if err != nil {
		return err
	}
	updatedAt := s.now().UTC().Format(time.RFC3339)

	var primaryErr error
	if !IsLocalID(id) {
		if s.primaryReady(ctx, "update_status") {
			err := s.updatePrimary(ctx, enterprise, id, st, updatedAt)
			if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrSlotConflict) {
				return err
			}
			s.degrade("update_status", enterprise, err)
			primaryErr = err
		} else if s.primary != nil {
			primaryErr = errNoSession
		}
	}

	err = s.fallback.UpdateStatusIfFree(ctx, enterprise, id, st, updatedAt, s.validator.Conflicts)
	return unreachable(err, primaryErr)
}

func (s *service) updatePrimary(ctx context.Context, enterprise, id string, st Status, updatedAt string) error {
	clash, err := s.revivalClashesLocally(ctx, enterprise, id, st)
	if err != nil {
		return fmt.Errorf("%w: find booking: %v", errStoreUnavailable, err)
	}
	if clash {
		return ErrSlotConflict
	}
	return s.primary.UpdateStatus(ctx, enterprise, id, st, updatedAt)
}

// revivalClashesLocally reports whether moving a cancelled primary booking
// back to a live status would take a slot held by the fallback store.
func (s *service) revivalClashesLocally(ctx context.Context, enterprise, id string, st Status) (bool, error) {
	if st == StatusCancelled || s.fallback.Len(enterprise) == 0 {
		return false, nil
	}
	records, err := s.primary.Find(ctx, enterprise, nil)
	if err != nil {
		return false, err
	}
	for _, b := range records {
		if b.ID != id {
			continue
		}
		if b.Status != StatusCancelled {
			return false, nil
		}
		candidate := b.Clone()
		candidate.Status = st
		local, err := s.fallback.Find(ctx, enterprise, s.validator.conflictQuery(candidate))
		if err != nil {
			return false, err
		}
		return s.validator.Conflicts(local, candidate), nil
	}
	return false, nil
}

func (s *service) Remove(ctx context.Context, enterpriseEmail, id string) error {
	enterprise := NormalizeEnterprise(enterpriseEmail)
	if enterprise == "" {
		return ErrEnterpriseRequired
	}

	var primaryErr error
	if !IsLocalID(id) {
		if s.primaryReady(ctx, "remove") {
			err := s.primary.Delete(ctx, enterprise, id)
			if err == nil || errors.Is(err, ErrNotFound) {
				return err
			}
			s.degrade("remove", enterprise, err)
			primaryErr = err
		} else if s.primary != nil {
			primaryErr = errNoSession
		}
	}

	return unreachable(s.fallback.Delete(ctx, enterprise, id), primaryErr)
}

// unreachable reports a fallback miss as a persistence failure when the
// booking may be held by a primary store that could not be reached.
func unreachable(fallbackErr, primaryErr error) error {
	if primaryErr != nil && errors.Is(fallbackErr, ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPersistence, primaryErr)
	}
	return fallbackErr
}

func (s *service) PendingLocal() map[string]int {
	return s.fallback.Counts()
}

// primaryReady checks the session gate and records a fallback when it is
// closed.
func (s *service) primaryReady(ctx context.Context, op string) bool {
	if s.primary != nil && s.session != nil && s.session.HasSession(ctx) {
		return true
	}
	s.observe(op, "no_session")
	return false
}

func (s *service) degrade(op, enterprise string, err error) {
	log.Printf("WARN booking: %s for %s served by fallback store: %v", op, enterprise, err)
	s.observe(op, "primary_error")
}

func (s *service) observe(op, reason string) {
	if s.observer != nil {
		s.observer.ObserveFallback(op, reason)
	}
}

func (s *service) today() time.Time {
	return s.now().In(s.loc)
}
