package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"originform/internal/ingest/models"
	"originform/internal/ingest/store"
	"originform/pkg/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *store.InMemorySubmissionStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = store.NewInMemorySubmissionStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) submission(id string, receivedAt time.Time) models.Submission {
	return models.Submission{
		ID:             id,
		ExporterName:   "Acme Textiles Ltd",
		ExporterEmail:  "exports@acme.example",
		FormData:       json.RawMessage(`{"companyName":"Acme Textiles Ltd"}`),
		AttachmentKeys: []string{"submissions/" + id + "/certificate_0_cert.pdf"},
		ReceivedAt:     receivedAt,
	}
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	sub := s.submission("sub-1", time.Now().UTC())
	s.Require().NoError(s.store.Save(s.ctx, sub))

	found, err := s.store.FindByID(s.ctx, "sub-1")
	s.Require().NoError(err)
	s.Equal(sub, found)
}

func (s *MemoryStoreSuite) TestSaveDuplicateConflicts() {
	sub := s.submission("sub-1", time.Now().UTC())
	s.Require().NoError(s.store.Save(s.ctx, sub))

	err := s.store.Save(s.ctx, sub)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *MemoryStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, "nope")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListRecentOrdersAndLimits() {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Save(s.ctx, s.submission("sub-old", base)))
	s.Require().NoError(s.store.Save(s.ctx, s.submission("sub-new", base.Add(2*time.Hour))))
	s.Require().NoError(s.store.Save(s.ctx, s.submission("sub-mid", base.Add(time.Hour))))

	subs, err := s.store.ListRecent(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(subs, 3)
	s.Equal("sub-new", subs[0].ID)
	s.Equal("sub-mid", subs[1].ID)
	s.Equal("sub-old", subs[2].ID)

	subs, err = s.store.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(subs, 2)
	s.Equal("sub-new", subs[0].ID)
}
