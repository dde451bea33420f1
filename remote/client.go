// Package remote is the client for the upstream order/table service. All
// calls go through a resty client with a circuit breaker; the bearer token is
// attached as-is, token issuance lives elsewhere.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"posbackend/pkg/normalize"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http    *resty.Client
	baseURL string
	orders  *breaker
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0) // the breaker decides, not the transport
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{
		http:    c,
		baseURL: baseURL,
		orders:  newBreaker("orders"),
	}
}

// OrderItemPayload mirrors the upstream line shape.
type OrderItemPayload struct {
	MenuItemID     uint    `json:"menuItemId,omitempty"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unitPrice"`
	Qty            int     `json:"qty"`
	Customizations string  `json:"customizations,omitempty"`
}

type BillsPayload struct {
	Subtotal     float64 `json:"total"`
	Tax          float64 `json:"tax"`
	TotalWithTax float64 `json:"totalWithTax"`
}

type CustomerPayload struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	GuestCount int    `json:"guests"`
}

type OrderPayload struct {
	CustomerDetails CustomerPayload    `json:"customerDetails"`
	Items           []OrderItemPayload `json:"items"`
	Bills           BillsPayload       `json:"bills"`
	TableNo         string             `json:"tableNo,omitempty"`
	PaymentMethod   string             `json:"paymentMethod"`
	Status          string             `json:"orderStatus"`
}

type CreatedOrder struct {
	ID string
}

// SubmitOrder posts the order upstream. Any transport error or non-2xx is an
// error; the caller decides whether to fall back to local-only placement.
func (c *Client) SubmitOrder(ctx context.Context, p *OrderPayload) (*CreatedOrder, error) {
	out, err := c.orders.do(func() (any, error) {
		resp, httpErr := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(p).
			Post(c.baseURL + "/orders")
		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
			return nil, fmt.Errorf("order service returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return parseCreated(resp.Body())
	})
	if err != nil {
		return nil, err
	}
	return out.(*CreatedOrder), nil
}

// parseCreated pulls the server-assigned id out of the create response, which
// arrives either bare or wrapped in a data envelope.
func parseCreated(body []byte) (*CreatedOrder, error) {
	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if inner, ok := outer["data"].(map[string]any); ok {
		outer = inner
	}
	for _, key := range []string{"id", "_id", "orderId"} {
		if v, ok := outer[key]; ok {
			if id := asID(v); id != "" {
				return &CreatedOrder{ID: id}, nil
			}
		}
	}
	return nil, fmt.Errorf("order service response has no id")
}

func asID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	}
	return ""
}

// FetchOrders lists upstream orders. The response envelope varies by
// deployment, so the body goes through the normalizer's unwrapper.
func (c *Client) FetchOrders(ctx context.Context) ([]map[string]any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/orders")
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode())
	}
	return normalize.UnwrapEnvelope(resp.Body()), nil
}

// UpdateTable pushes a table status change upstream. Fire-and-forget from the
// checkout's perspective; the caller only logs failures.
func (c *Client) UpdateTable(ctx context.Context, tableID, status string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"status": status}).
		Put(c.baseURL + "/tables/" + tableID)
	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("table service returned status %d", resp.StatusCode())
	}
	return nil
}

// BreakerState reports the orders circuit for the status endpoint.
func (c *Client) BreakerState() string {
	return c.orders.State().String()
}
