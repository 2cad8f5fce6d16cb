package common

import (
	"context"
	"log"
	"plannova/src/config"
	"plannova/src/lib"
	"plannova/src/lib/mailer"
	"plannova/src/types"

	"github.com/tidwall/gjson"
)

func NotificationHandler(ctx context.Context) types.Handler {
	return func(body string) {
		input, ok := notificationFor(body)
		if !ok {
			return
		}
		if input.From == "" {
			input.From = config.MAIL_FROM
		}
		if err := mailer.Send(ctx, input); err != nil {
			log.Printf("[MAILER] %s\n", err.Error())
			return
		}
		log.Printf("[MAILER]: an email has been sent to %s\n", input.To)
	}
}

// notificationFor maps a workflow event, raw or wrapped in an SNS envelope, to
// the mail it should trigger. Events without a recipient are skipped.
func notificationFor(body string) (*lib.SendMailInput, bool) {
	if !gjson.Valid(body) {
		log.Println("[notifications] Received invalid json body. Aborting")
		return nil, false
	}
	if gjson.Get(body, "Type").String() == "Notification" {
		body = gjson.Get(body, "Message").String()
		if !gjson.Valid(body) {
			log.Println("[notifications] Received invalid SNS message. Aborting")
			return nil, false
		}
	}

	payload := gjson.Get(body, "payload")
	email := payload.Get("email").String()
	if email == "" {
		return nil, false
	}
	switch types.WorkflowEventType(gjson.Get(body, "type").String()) {
	case types.VENDOR_APPROVED_EVENT, types.VENDOR_REJECTED_EVENT:
		return mailer.VendorDecision(payload.Get("name").String(), email, payload.Get("status").String()), true
	case types.PAYMENT_SETTLED_EVENT:
		return mailer.PayoutSettled(
			payload.Get("vendor_name").String(),
			email,
			payload.Get("payment_id").String(),
			payload.Get("amount").Int(),
			payload.Get("currency").String(),
		), true
	case types.PAYMENT_FAILED_EVENT:
		return mailer.PayoutFailed(
			payload.Get("vendor_name").String(),
			email,
			payload.Get("payment_id").String(),
			payload.Get("amount").Int(),
			payload.Get("currency").String(),
			payload.Get("failure_reason").String(),
		), true
	}
	return nil, false
}
