package lib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"plannova/src/config"
	"plannova/src/models"
	"plannova/src/types"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

var ErrCaptureInProgress = errors.New("capture still in progress")

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	sc := stripe.NewClient(config.STRIPE_SECRET_KEY)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// StripeCapturer settles a payout by confirming a PaymentIntent off-session.
// The idempotency key is derived from the payment so retries never double charge.
type StripeCapturer struct {
	sc            *stripe.Client
	paymentMethod string
}

func NewStripeCapturer(sc *stripe.Client) *StripeCapturer {
	return &StripeCapturer{sc: sc, paymentMethod: config.STRIPE_PAYMENT_METHOD}
}

func (c *StripeCapturer) Capture(ctx context.Context, p *models.Payment) (*types.CaptureResult, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(p.Amount),
		Currency:      stripe.String(p.Currency),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String(c.paymentMethod),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.SetIdempotencyKey(fmt.Sprintf("settlement-%s", p.ID.String()))
	params.AddMetadata("payment_id", p.ID.String())
	params.AddMetadata("event_id", p.EventID.String())
	params.AddMetadata("vendor_id", p.VendorID.String())

	intent, err := c.sc.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Type == stripe.ErrorTypeCard {
			log.Printf("[stripe] capture declined for %s: %s\n", p.ID.String(), serr.Msg)
			return &types.CaptureResult{Outcome: types.OUTCOME_FAILURE, Reason: string(serr.Code)}, nil
		}
		log.Printf("[stripe] Error creating payment intent: %s\n", err.Error())
		return nil, err
	}

	if intent.Status == stripe.PaymentIntentStatusProcessing {
		// a replayed create returns the original snapshot, so read the live status
		intent, err = c.sc.V1PaymentIntents.Retrieve(ctx, intent.ID, nil)
		if err != nil {
			log.Printf("[stripe] Error retrieving payment intent for %s: %s\n", p.ID.String(), err.Error())
			return nil, err
		}
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return &types.CaptureResult{Outcome: types.OUTCOME_SUCCESS, Reference: intent.ID}, nil
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		// off-session with redirects disabled, nobody can complete a customer action
		log.Printf("[stripe] payment intent %s for %s ended as %s\n", intent.ID, p.ID.String(), string(intent.Status))
		return &types.CaptureResult{Outcome: types.OUTCOME_FAILURE, Reference: intent.ID, Reason: string(intent.Status)}, nil
	}
	log.Printf("[stripe] payment intent %s for %s is still %s\n", intent.ID, p.ID.String(), string(intent.Status))
	return nil, fmt.Errorf("payment intent %s is %s: %w", intent.ID, string(intent.Status), ErrCaptureInProgress)
}
