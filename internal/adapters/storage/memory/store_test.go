package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/audit"

	"github.com/stretchr/testify/require"
)

func seedAnimal(t *testing.T, s *Store, id string, status animals.ListingStatus) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.CreateAnimal(context.Background(), animals.Animal{
		ID: id, Name: id, ListingStatus: status, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestDo_FailedTxDiscardsEveryWrite(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAnimal(t, s, "a1", animals.ListingArchived)

	boom := errors.New("boom")
	err := s.Do(ctx, func(v *view) error {
		ok, err := v.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
			AnimalID: "a1",
			From:     []animals.ListingStatus{animals.ListingArchived},
			To:       animals.ListingDraft,
			At:       time.Now(),
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, v.AppendAuditEntry(ctx, audit.Entry{ID: "e1", AnimalID: "a1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := s.GetAnimal(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, animals.ListingArchived, a.ListingStatus)

	entries, err := s.ListAuditEntries(ctx, "a1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDo_CommitPublishesWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAnimal(t, s, "a1", animals.ListingDraft)

	err := s.Do(ctx, func(v *view) error {
		_, err := v.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
			AnimalID: "a1",
			From:     []animals.ListingStatus{animals.ListingDraft},
			To:       animals.ListingPublished,
			At:       time.Now(),
		})
		return err
	})
	require.NoError(t, err)

	a, _ := s.GetAnimal(ctx, "a1")
	require.Equal(t, animals.ListingPublished, a.ListingStatus)
}

func TestConditionalUpdate_StaleStatusIsNotApplied(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAnimal(t, s, "a1", animals.ListingPublished)

	ok, err := s.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
		AnimalID: "a1",
		From:     []animals.ListingStatus{animals.ListingArchived},
		To:       animals.ListingDraft,
		At:       time.Now(),
	})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{AnimalID: "missing", To: animals.ListingDraft})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSoftDeletedAnimalIsGone(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAnimal(t, s, "a1", animals.ListingDraft)

	ok, err := s.SoftDeleteAnimal(ctx, "a1", []animals.ListingStatus{animals.ListingDraft}, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.GetAnimal(ctx, "a1")
	require.ErrorIs(t, err, apperr.ErrRecordNotFound)
	require.ErrorIs(t, s.UpdateAnimal(ctx, animals.Animal{ID: "a1"}), apperr.ErrRecordNotFound)
}

func TestUpdateAnimal_KeepsListingFields(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedAnimal(t, s, "a1", animals.ListingPublished)

	require.NoError(t, s.UpdateAnimal(ctx, animals.Animal{ID: "a1", Name: "renamed", ListingStatus: animals.ListingArchived}))

	a, _ := s.GetAnimal(ctx, "a1")
	require.Equal(t, "renamed", a.Name)
	require.Equal(t, animals.ListingPublished, a.ListingStatus)
}
