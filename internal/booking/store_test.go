package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloST8/xcorte-sub001/internal/docstore"
)

type fakeDocs struct {
	queried  []docstore.Equal
	inserted docstore.Record
	patched  docstore.Record
	docs     []docstore.Document
	err      error
}

func (f *fakeDocs) Query(ctx context.Context, collection string, filters []docstore.Equal) ([]docstore.Document, error) {
	f.queried = filters
	return f.docs, f.err
}

func (f *fakeDocs) Insert(ctx context.Context, collection string, rec docstore.Record) (string, error) {
	f.inserted = rec
	return "abc", f.err
}

func (f *fakeDocs) UpdateFields(ctx context.Context, collection, id string, fields docstore.Record) error {
	f.patched = fields
	return f.err
}

func (f *fakeDocs) Delete(ctx context.Context, collection, id string) error {
	return f.err
}

func TestRecordRoundTrip(t *testing.T) {
	b := &Booking{
		ID:              "ignored",
		EnterpriseEmail: shop,
		ClientName:      "Ana",
		ClientPhone:     "11999990000",
		StaffID:         "s1",
		ProductPrice:    3000,
		ProductDuration: 45,
		Date:            "2025-03-10",
		StartTime:       "09:00",
		EndTime:         "09:45",
		Status:          StatusConfirmed,
		CreatedAt:       "2025-03-10T12:00:00Z",
		UpdatedAt:       "2025-03-10T12:00:00Z",
	}

	rec, err := ToRecord(b)
	require.NoError(t, err)
	_, hasID := rec["id"]
	assert.False(t, hasID)
	assert.Equal(t, "s1", rec["staffId"])

	got, err := FromRecord("doc-9", rec)
	require.NoError(t, err)

	want := *b
	want.ID = "doc-9"
	assert.Equal(t, &want, got)
}

func TestFromRecordReadsLegacyDocuments(t *testing.T) {
	got, err := FromRecord("old-1", docstore.Record{
		"customerName":   "Bruno",
		"phone":          "(11) 91234-5678",
		"professionalId": "s2",
		"serviceName":    "Barba",
		"price":          "R$ 25,50",
		"duration":       "30min",
		"date":           "2024-12-01",
		"time":           "10:00",
		"status":         "canceled",
		"unknownField":   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bruno", got.ClientName)
	assert.Equal(t, "11912345678", got.ClientPhone)
	assert.Equal(t, "s2", got.StaffID)
	assert.Equal(t, "Barba", got.ProductName)
	assert.Equal(t, int64(2550), got.ProductPrice)
	assert.Equal(t, 30, got.ProductDuration)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, StatusCancelled, got.Status)

	got, err = FromRecord("old-2", docstore.Record{"clientName": "X", "price": "free", "status": "waiting"})
	require.NoError(t, err)
	assert.Zero(t, got.ProductPrice)
	assert.Equal(t, Status("waiting"), got.Status)

	got, err = FromRecord("old-3", docstore.Record{"clientName": "Y"})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)
}

func TestDocumentStoreAdapter(t *testing.T) {
	ctx := context.Background()
	docs := &fakeDocs{docs: []docstore.Document{{ID: "d1", Data: docstore.Record{"clientName": "Ana", "date": "2025-03-10"}}}}
	s := NewDocumentStore(docs)

	got, err := s.Find(ctx, shop, map[string]string{"startTime": "09:00", "date": "2025-03-10", "staffId": "s1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, shop, got[0].EnterpriseEmail)
	assert.Equal(t, []docstore.Equal{
		{Field: "date", Value: "2025-03-10"},
		{Field: "staffId", Value: "s1"},
		{Field: "startTime", Value: "09:00"},
	}, docs.queried)

	id, err := s.Insert(ctx, &Booking{EnterpriseEmail: shop, ClientName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "Ana", docs.inserted["clientName"])

	require.NoError(t, s.UpdateStatus(ctx, shop, "d1", StatusCancelled, "2025-03-10T13:00:00Z"))
	assert.Equal(t, docstore.Record{"status": "cancelled", "updatedAt": "2025-03-10T13:00:00Z"}, docs.patched)
}

func TestDocumentStoreAdapterMapsErrors(t *testing.T) {
	ctx := context.Background()

	dup := NewDocumentStore(&fakeDocs{err: docstore.ErrDuplicate})
	_, err := dup.Insert(ctx, &Booking{EnterpriseEmail: shop})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, dup.UpdateStatus(ctx, shop, "d1", StatusScheduled, ""), ErrSlotConflict)

	missing := NewDocumentStore(&fakeDocs{err: docstore.ErrNotFound})
	assert.ErrorIs(t, missing.UpdateStatus(ctx, shop, "d1", StatusScheduled, ""), ErrNotFound)
	assert.ErrorIs(t, missing.Delete(ctx, shop, "d1"), ErrNotFound)
}
