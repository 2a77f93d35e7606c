package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinhub/internal/sync/models"
)

func TestAggregatePets(t *testing.T) {
	t.Run("groups by owner across orders in encounter order", func(t *testing.T) {
		orders := []models.Order{
			{ID: "ord-1", Status: "placed", Attendees: []models.Ticket{
				petTicket("t-1", "a@example.com", "Rex"),
				petTicket("t-2", "b@example.com", "Bella"),
			}},
			{ID: "ord-2", Status: "placed", Attendees: []models.Ticket{
				petTicket("t-3", "a@example.com", "Fido"),
			}},
		}

		owners := aggregatePets(orders)
		require.Len(t, owners, 2)
		assert.Equal(t, "a@example.com", owners[0].Email)
		assert.Equal(t, []string{"Rex", "Fido"}, owners[0].Pets)
		assert.Equal(t, "b@example.com", owners[1].Email)
		assert.Equal(t, []string{"Bella"}, owners[1].Pets)
	})

	t.Run("human tickets and cancelled orders are excluded", func(t *testing.T) {
		orders := []models.Order{
			{ID: "ord-1", Status: models.OrderStatusCancelled, Attendees: []models.Ticket{
				petTicket("t-1", "gone@example.com", "Ghost"),
			}},
			{ID: "ord-2", Status: "placed", Attendees: []models.Ticket{
				humanTicket("t-2", "a@example.com", "Jane", "Doe"),
			}},
		}
		assert.Empty(t, aggregatePets(orders))
	})

	t.Run("pet tickets without email are dropped", func(t *testing.T) {
		orders := []models.Order{
			{ID: "ord-1", Status: "placed", Attendees: []models.Ticket{
				{ID: "t-1", TicketClassName: models.PetTicketClass},
			}},
		}
		assert.Empty(t, aggregatePets(orders))
	})

	t.Run("classification is an exact match", func(t *testing.T) {
		orders := []models.Order{
			{ID: "ord-1", Status: "placed", Attendees: []models.Ticket{
				{ID: "t-1", TicketClassName: "dog registration", Profile: &models.Profile{Email: "a@example.com"}},
				{ID: "t-2", TicketClassName: "Dog Registration (VIP)", Profile: &models.Profile{Email: "a@example.com"}},
			}},
		}
		assert.Empty(t, aggregatePets(orders))
	})
}

func TestPetName(t *testing.T) {
	tests := []struct {
		raw  string
		i    int
		want string
	}{
		{"Rex", 0, "Rex"},
		{"", 0, "Dog 1"},
		{"   ", 1, "Dog 2"},
		{"", 4, "Dog 5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, petName(tt.raw, tt.i))
	}
}
