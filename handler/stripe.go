package handler

import (
	"festival_manager/config"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// PaymentIntentSummary is the gateway-neutral view the handlers work with.
type PaymentIntentSummary struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64 // minor units
	Currency     string
}

const IntentStatusSucceeded = "succeeded"

// PaymentGateway wraps the card-payment provider. RetrieveIntent re-fetches
// the intent from the provider; client-reported status is never trusted.
type PaymentGateway interface {
	CreateIntent(amountCents int64, currency string, metadata map[string]string) (*PaymentIntentSummary, error)
	RetrieveIntent(id string) (*PaymentIntentSummary, error)
}

// Gateway is the process-wide gateway, swapped for a stub in tests.
var Gateway PaymentGateway

func gateway() PaymentGateway {
	if Gateway == nil {
		Gateway = NewStripeGateway()
	}
	return Gateway
}

type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	stripe.Key = config.Config("STRIPE_SECRET_KEY")
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(amountCents int64, currency string, metadata map[string]string) (*PaymentIntentSummary, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return summarize(pi), nil
}

func (g *StripeGateway) RetrieveIntent(id string) (*PaymentIntentSummary, error) {
	pi, err := paymentintent.Get(id, nil)
	if err != nil {
		return nil, err
	}
	return summarize(pi), nil
}

func summarize(pi *stripe.PaymentIntent) *PaymentIntentSummary {
	return &PaymentIntentSummary{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}
