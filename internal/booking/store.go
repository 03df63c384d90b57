package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/PabloST8/xcorte-sub001/internal/docstore"
)

// Store is the persistence contract shared by the primary and fallback
// backends. Every call is scoped to one enterprise.
type Store interface {
	Find(ctx context.Context, enterpriseEmail string, eq map[string]string) ([]*Booking, error)
	Insert(ctx context.Context, b *Booking) (string, error)
	UpdateStatus(ctx context.Context, enterpriseEmail, id string, status Status, updatedAt string) error
	Delete(ctx context.Context, enterpriseEmail, id string) error
}

// DocumentStore is the primary persistence capability.
type DocumentStore interface {
	Query(ctx context.Context, collection string, filters []docstore.Equal) ([]docstore.Document, error)
	Insert(ctx context.Context, collection string, rec docstore.Record) (string, error)
	UpdateFields(ctx context.Context, collection, id string, fields docstore.Record) error
	Delete(ctx context.Context, collection, id string) error
}

type documentStore struct {
	docs DocumentStore
}

// NewDocumentStore adapts a document store into a booking Store.
func NewDocumentStore(docs DocumentStore) Store {
	return &documentStore{docs: docs}
}

func (s *documentStore) Find(ctx context.Context, enterpriseEmail string, eq map[string]string) ([]*Booking, error) {
	docs, err := s.docs.Query(ctx, CollectionPath(enterpriseEmail), equalities(eq))
	if err != nil {
		return nil, err
	}
	out := make([]*Booking, 0, len(docs))
	for _, d := range docs {
		b, err := FromRecord(d.ID, d.Data)
		if err != nil {
			return nil, fmt.Errorf("decode booking %s failed: %w", d.ID, err)
		}
		if b.EnterpriseEmail == "" {
			b.EnterpriseEmail = enterpriseEmail
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *documentStore) Insert(ctx context.Context, b *Booking) (string, error) {
	rec, err := ToRecord(b)
	if err != nil {
		return "", err
	}
	id, err := s.docs.Insert(ctx, CollectionPath(b.EnterpriseEmail), rec)
	if errors.Is(err, docstore.ErrDuplicate) {
		return "", ErrSlotConflict
	}
	return id, err
}

func (s *documentStore) UpdateStatus(ctx context.Context, enterpriseEmail, id string, status Status, updatedAt string) error {
	err := s.docs.UpdateFields(ctx, CollectionPath(enterpriseEmail), id, docstore.Record{
		"status":    string(status),
		"updatedAt": updatedAt,
	})
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrDuplicate):
		return ErrSlotConflict
	}
	return err
}

func (s *documentStore) Delete(ctx context.Context, enterpriseEmail, id string) error {
	err := s.docs.Delete(ctx, CollectionPath(enterpriseEmail), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func equalities(eq map[string]string) []docstore.Equal {
	out := make([]docstore.Equal, 0, len(eq))
	for k, v := range eq {
		out = append(out, docstore.Equal{Field: k, Value: v})
	}
	// Stable SQL text for the same filter set.
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// ToRecord encodes a booking into its canonical document body. The id lives
// outside the body.
func ToRecord(b *Booking) (docstore.Record, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode booking failed: %w", err)
	}
	var rec docstore.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("encode booking failed: %w", err)
	}
	delete(rec, "id")
	return rec, nil
}

// storedRecord reads documents written by older clients, which used the
// same legacy field spellings as RawInput.
type storedRecord struct {
	RawInput
	EnterpriseEmail Value `json:"enterpriseEmail"`
	CreatedAt       Value `json:"createdAt"`
	UpdatedAt       Value `json:"updatedAt"`
}

// FromRecord decodes a stored document into the canonical Booking shape.
// Unlike NormalizeInput it never rejects a record: unparsable numbers become
// zero and unknown statuses are kept as stored.
func FromRecord(id string, rec docstore.Record) (*Booking, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var r storedRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}

	price, _ := coercePrice(r.ProductPrice, r.Price)
	duration, _ := coerceDuration(first(r.ProductDuration, r.Duration))
	status := StatusScheduled
	if !r.Status.IsZero() {
		status = Normalize(r.Status.String())
	}

	return &Booking{
		ID:              id,
		EnterpriseEmail: NormalizeEnterprise(r.EnterpriseEmail.String()),
		ClientName:      first(r.ClientName, r.CustomerName).String(),
		ClientPhone:     DigitsOnly(first(r.ClientPhone, r.Phone).String()),
		ClientEmail:     first(r.ClientEmail, r.Email).String(),
		StaffID:         first(r.StaffID, r.ProfessionalID).String(),
		StaffName:       first(r.StaffName, r.ProfessionalName).String(),
		ProductID:       first(r.ProductID, r.ServiceID).String(),
		ProductName:     first(r.ProductName, r.ServiceName).String(),
		ProductPrice:    price,
		ProductDuration: duration,
		Date:            r.Date.String(),
		StartTime:       first(r.StartTime, r.Time).String(),
		EndTime:         r.EndTime.String(),
		Status:          status,
		Notes:           r.Notes.String(),
		CreatedAt:       r.CreatedAt.String(),
		UpdatedAt:       r.UpdatedAt.String(),
	}, nil
}
