package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Gateway wraps the Mercado Pago clients used by the payment flow:
// one checkout preference per charge, webhook-driven status updates.
type Gateway struct {
	preferences preference.Client
	payments    payment.Client
}

func NewGateway(accessToken string) (*Gateway, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("missing mercado pago access token")
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}

	return &Gateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

type Checkout struct {
	PreferenceID string
	InitPoint    string
}

func (g *Gateway) CreateCheckout(
	ctx context.Context,
	title string,
	amount float64,
	externalReference string,
	notificationURL string,
) (*Checkout, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     title,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: externalReference,
	}

	if notificationURL != "" {
		req.NotificationURL = notificationURL
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Checkout{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}

type PaymentInfo struct {
	Status            string
	ExternalReference string
}

func (g *Gateway) GetPayment(ctx context.Context, id int) (*PaymentInfo, error) {
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &PaymentInfo{
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}, nil
}
