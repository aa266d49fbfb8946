// internal/payments/stripe.go
package payments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Donation amount in the smallest currency unit (cents).
const donationAmountCents = 1000

// Client creates Stripe payment intents for donations.
type Client struct {
	enabled bool
}

// NewClient configures the Stripe SDK with the account secret. An empty
// key leaves the client disabled so local setups without Stripe still run.
func NewClient(secretKey string) *Client {
	if secretKey == "" {
		slog.Warn("stripe secret key not set, payment endpoints disabled")
		return &Client{}
	}
	stripe.Key = secretKey
	return &Client{enabled: true}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

// CreatePaymentIntent opens a fixed-amount payment intent tagged with the
// donor's email and returns the client secret the frontend confirms with.
func (c *Client) CreatePaymentIntent(ctx context.Context, email string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(donationAmountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("email", email)
	params.IdempotencyKey = stripe.String(uuid.NewString())

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
