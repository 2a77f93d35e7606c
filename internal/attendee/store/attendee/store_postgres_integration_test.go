//go:build integration

package attendee

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"checkinhub/internal/attendee/models"
	"checkinhub/internal/platform/postgres"
	"checkinhub/pkg/platform/sentinel"
	"checkinhub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	store     *PostgresStore
	ctx       context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(s.ctx, s.container.DB))
	s.store = NewPostgres(s.container.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.container.DB.ExecContext(s.ctx, "TRUNCATE attendees")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) attendee(email, name string) *models.Attendee {
	return &models.Attendee{
		Email:      email,
		Name:       name,
		ExternalID: "ext-" + email,
		EventID:    "evt-1",
		OrderID:    "ord-1",
	}
}

func (s *PostgresStoreSuite) TestUpsertRoundTrip() {
	s.Require().NoError(s.store.Upsert(s.ctx, s.attendee("jane@example.com", "Jane Doe")))

	got, err := s.store.FindByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.False(got.ID.IsNil())
	s.Equal("Jane Doe", got.Name)
	s.Equal("evt-1", got.EventID)
	s.False(got.VaccineUploadStatus)
}

func (s *PostgresStoreSuite) TestUpsertConflictPreservesVaccineStatus() {
	s.Require().NoError(s.store.Upsert(s.ctx, s.attendee("jane@example.com", "Jane Doe")))
	s.Require().NoError(s.store.SetVaccineUploaded(s.ctx, "evt-1", "jane@example.com"))

	first, err := s.store.FindByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)

	updated := s.attendee("jane@example.com", "Jane Smith")
	updated.OrderID = "ord-2"
	s.Require().NoError(s.store.Upsert(s.ctx, updated))

	got, err := s.store.FindByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID, "conflict update must keep the original row")
	s.Equal("Jane Smith", got.Name)
	s.Equal("ord-2", got.OrderID)
	s.True(got.VaccineUploadStatus)
}

func (s *PostgresStoreSuite) TestFindByEmailNotFound() {
	_, err := s.store.FindByEmail(s.ctx, "nobody@example.com")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestListByEventOrdersByName() {
	s.Require().NoError(s.store.Upsert(s.ctx, s.attendee("zoe@example.com", "Zoe Hart")))
	s.Require().NoError(s.store.Upsert(s.ctx, s.attendee("amy@example.com", "Amy Barr")))
	other := s.attendee("stray@example.com", "Stray Row")
	other.EventID = "evt-other"
	s.Require().NoError(s.store.Upsert(s.ctx, other))

	got, err := s.store.ListByEvent(s.ctx, "evt-1")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("Amy Barr", got[0].Name)
	s.Equal("Zoe Hart", got[1].Name)
}

func (s *PostgresStoreSuite) TestSetVaccineUploadedUnknownAttendee() {
	err := s.store.SetVaccineUploaded(s.ctx, "evt-1", "nobody@example.com")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
