// Package payments creates checkout links for pending income entries.
package payments

import "context"

type CheckoutRequest struct {
	Reference   string
	Title       string
	AmountCents int64
}

type CheckoutLink struct {
	ProviderID string
	URL        string
}

type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)
}
