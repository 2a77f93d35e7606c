// Package ticketsource fetches order and attendee data from the external
// ticketing provider. It is the only place that deals with the provider's
// wire format: payloads are validated into sync models at this boundary and
// malformed records are dropped per-item instead of failing the batch.
package ticketsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"checkinhub/internal/platform/config"
	"checkinhub/internal/sync/models"
)

// Error is a classified fetch failure. The orchestrator folds the kind
// straight into its run result.
type Error struct {
	Kind    models.ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Client talks to the ticketing provider's orders endpoint.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New constructs a provider client from configuration.
func New(cfg config.TicketingConfig, logger *slog.Logger, opts ...Option) *Client {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ordersResponse is the provider's wire envelope. A 200 response may still
// carry a provider-level error instead of orders.
type ordersResponse struct {
	EventID    string          `json:"event_id"`
	Orders     []wireOrder     `json:"orders"`
	Pagination *wirePagination `json:"pagination"`

	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	StatusCode       int    `json:"status_code"`
}

type wireOrder struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	Attendees []wireTicket `json:"attendees"`
}

type wireTicket struct {
	ID              string       `json:"id"`
	Profile         *wireProfile `json:"profile"`
	TicketClassName string       `json:"ticket_class_name"`
}

type wireProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type wirePagination struct {
	HasMoreItems bool   `json:"has_more_items"`
	Continuation string `json:"continuation"`
}

// FetchOrders retrieves every page of orders for an event. The whole fetch
// (all pages) runs under one wall-clock deadline so a sync click can never
// hang indefinitely; hitting the deadline classifies as a connection error.
func (c *Client) FetchOrders(ctx context.Context, eventID string) (*models.OrderBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	batch := &models.OrderBatch{}
	continuation := ""
	for {
		page, err := c.fetchPage(ctx, eventID, continuation)
		if err != nil {
			return nil, err
		}

		if batch.EventID == "" {
			batch.EventID = page.EventID
		}
		batch.Orders = append(batch.Orders, c.convertOrders(page.Orders)...)

		if page.Pagination == nil || !page.Pagination.HasMoreItems {
			return batch, nil
		}
		continuation = page.Pagination.Continuation
	}
}

func (c *Client) fetchPage(ctx context.Context, eventID, continuation string) (*ordersResponse, error) {
	endpoint := fmt.Sprintf("%s/events/%s/orders", c.baseURL, url.PathEscape(eventID))
	query := url.Values{"expand": {"attendees,ticket_class"}}
	if continuation != "" {
		query.Set("continuation", continuation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: models.ErrKindConnection, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: models.ErrKindConnection, Message: "ticketing provider did not respond within the fetch deadline"}
		}
		return nil, &Error{Kind: models.ErrKindConnection, Message: fmt.Sprintf("reach ticketing provider: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providerError(resp.StatusCode)
	}

	var page ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &Error{Kind: models.ErrKindProvider, Message: fmt.Sprintf("malformed provider response: %v", err)}
	}

	// The provider reports some failures inside a 200 envelope.
	if page.Error != "" {
		perr := providerError(page.StatusCode)
		if page.ErrorDescription != "" {
			perr.Message = page.ErrorDescription
		}
		return nil, perr
	}

	return &page, nil
}

// providerError maps a provider-reported HTTP status to a classified error
// with a human-readable cause.
func providerError(status int) *Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{
			Kind:    models.ErrKindProviderAuth,
			Status:  status,
			Message: "ticketing API key is missing or not authorized for this event",
		}
	case http.StatusNotFound:
		return &Error{
			Kind:    models.ErrKindProviderNotFound,
			Status:  status,
			Message: "the ticketing provider does not know this event",
		}
	default:
		return &Error{
			Kind:    models.ErrKindProvider,
			Status:  status,
			Message: "the ticketing provider reported an error",
		}
	}
}

// convertOrders validates wire orders into sync models, dropping malformed
// records per-item rather than failing the batch.
func (c *Client) convertOrders(wire []wireOrder) []models.Order {
	orders := make([]models.Order, 0, len(wire))
	for _, wo := range wire {
		if wo.ID == "" {
			c.logger.Warn("dropping provider order without an id")
			continue
		}
		order := models.Order{
			ID:     wo.ID,
			Status: models.OrderStatus(wo.Status),
		}
		for _, wt := range wo.Attendees {
			if wt.ID == "" {
				c.logger.Warn("dropping provider ticket without an id", "order_id", wo.ID)
				continue
			}
			ticket := models.Ticket{
				ID:              wt.ID,
				TicketClassName: wt.TicketClassName,
			}
			if wt.Profile != nil {
				ticket.Profile = &models.Profile{
					Email:     wt.Profile.Email,
					FirstName: wt.Profile.FirstName,
					LastName:  wt.Profile.LastName,
				}
			}
			order.Attendees = append(order.Attendees, ticket)
		}
		orders = append(orders, order)
	}
	return orders
}
