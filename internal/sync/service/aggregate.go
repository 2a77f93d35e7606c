package service

import (
	"fmt"
	"strings"

	"checkinhub/internal/sync/models"
)

// ownerPets is one owner's aggregated companion-animal tickets for a run.
type ownerPets struct {
	Email string
	Pets  []string
}

// aggregatePets groups pet tickets by owner email across all non-cancelled
// orders, preserving the encounter order of owners and of each owner's pets.
//
// This runs as its own pass, decoupled from the write side: the whole batch
// is aggregated in memory before any pet row is deleted or inserted, so a
// later order for the same owner can never race an earlier partial write.
func aggregatePets(orders []models.Order) []ownerPets {
	var owners []ownerPets
	index := make(map[string]int)

	for _, order := range orders {
		if order.Cancelled() {
			continue
		}
		for _, ticket := range order.Attendees {
			if !models.IsPetTicket(ticket) {
				continue
			}
			email := ticket.Email()
			if email == "" {
				continue
			}
			i, seen := index[email]
			if !seen {
				i = len(owners)
				index[email] = i
				owners = append(owners, ownerPets{Email: email})
			}
			// The ticket's first-name field is the pet's display name.
			// It may be empty; petName substitutes a default at insert.
			owners[i].Pets = append(owners[i].Pets, ticket.FirstName())
		}
	}
	return owners
}

// petName returns the display name for the pet at 0-indexed position i within
// its owner's batch, substituting "Dog {i+1}" for blank names.
func petName(raw string, i int) string {
	if strings.TrimSpace(raw) == "" {
		return fmt.Sprintf("Dog %d", i+1)
	}
	return raw
}
