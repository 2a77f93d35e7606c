// Package models defines the ticketing-source records flowing through a sync
// run and the run's outcome types. Provider payloads are validated into these
// explicit types at the client boundary; nothing downstream touches raw JSON.
package models

import "strings"

// PetTicketClass is the reserved ticket class name marking a companion-animal
// ticket. Classification is an exact, case-sensitive match: human ticket
// types that merely contain the word are not pets.
const PetTicketClass = "Dog Registration"

// OrderStatus is the provider's order lifecycle state. Only "cancelled" has
// meaning for the sync: cancelled orders contribute nothing.
type OrderStatus string

const OrderStatusCancelled OrderStatus = "cancelled"

// Profile is the ticket holder's contact details. The provider may omit it
// entirely, or return it without an email.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
}

// Ticket is a single ticket within an order.
type Ticket struct {
	ID              string
	Profile         *Profile
	TicketClassName string
}

// Email returns the holder's email, or "" when the profile is absent.
func (t Ticket) Email() string {
	if t.Profile == nil {
		return ""
	}
	return strings.TrimSpace(t.Profile.Email)
}

// FirstName returns the profile first name, or "" when the profile is absent.
func (t Ticket) FirstName() string {
	if t.Profile == nil {
		return ""
	}
	return t.Profile.FirstName
}

// LastName returns the profile last name, or "" when the profile is absent.
func (t Ticket) LastName() string {
	if t.Profile == nil {
		return ""
	}
	return t.Profile.LastName
}

// IsPetTicket classifies a ticket as a companion-animal registration.
func IsPetTicket(t Ticket) bool {
	return t.TicketClassName == PetTicketClass
}

// Order is one provider order with its tickets.
type Order struct {
	ID        string
	Status    OrderStatus
	Attendees []Ticket
}

// Cancelled reports whether the order is excluded from processing.
func (o Order) Cancelled() bool {
	return o.Status == OrderStatusCancelled
}

// OrderBatch is the full, de-paginated result of one provider fetch.
type OrderBatch struct {
	// EventID echoes the provider's event identifier. The orchestrator
	// refuses to write anything when it comes back empty.
	EventID string
	Orders  []Order
}
