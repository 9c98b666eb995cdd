package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPago creates a checkout preference per financial entry. The entry
// reference doubles as the external reference so webhook reconciliation can
// find the row later.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	resp, err := m.prefs.Create(ctx, preference.Request{
		ExternalReference: req.Reference,
		Items: []preference.ItemRequest{
			{
				Title:     req.Title,
				Quantity:  1,
				UnitPrice: float64(req.AmountCents) / 100,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutLink{
		ProviderID: resp.ID,
		URL:        resp.InitPoint,
	}, nil
}

var _ Provider = (*MercadoPago)(nil)
