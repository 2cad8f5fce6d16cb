package mailer

import (
	"context"
	"fmt"
	"plannova/src/config"
	"plannova/src/lib"
	"strings"
)

const footer = `<p>This is a system-generated message. Do not reply to this email.</p>`

var Deliver = lib.SendMail

func FormatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", strings.ToUpper(currency), amount/100, amount%100)
}

func VendorDecision(name, email, status string) *lib.SendMailInput {
	var body string
	switch status {
	case "approved":
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your vendor profile has been <b>approved</b>. Your services are now visible to event planners.</p>
			<p>Manage your listings <a href="%s/vendor">here</a></p>
			%s`, name, config.APP_HOST, footer)
	default:
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your vendor profile was <b>not approved</b> at this time. Reply to your onboarding contact to request another review.</p>
			%s`, name, footer)
	}
	return &lib.SendMailInput{
		Subject:  fmt.Sprintf("Plannova vendor application: %s", status),
		FromName: "noreply",
		To:       []string{email},
		Body:     body,
		Html:     true,
	}
}

func PayoutSettled(name, email, paymentID string, amount int64, currency string) *lib.SendMailInput {
	return &lib.SendMailInput{
		Subject:  fmt.Sprintf("Payout of %s settled", FormatAmount(amount, currency)),
		FromName: "noreply",
		To:       []string{email},
		Body: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your payout <b>%s</b> of %s has been settled.</p>
			%s`, name, paymentID, FormatAmount(amount, currency), footer),
		Html: true,
	}
}

func PayoutFailed(name, email, paymentID string, amount int64, currency, reason string) *lib.SendMailInput {
	if reason == "" {
		reason = "the payment processor declined the transfer"
	}
	return &lib.SendMailInput{
		Subject:  fmt.Sprintf("Payout of %s failed", FormatAmount(amount, currency)),
		FromName: "noreply",
		To:       []string{email},
		Body: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your payout <b>%s</b> of %s could not be settled: %s.</p>
			<p>Our team will contact you about next steps.</p>
			%s`, name, paymentID, FormatAmount(amount, currency), reason, footer),
		Html: true,
	}
}

func Send(ctx context.Context, input *lib.SendMailInput) error {
	if err := Deliver(ctx, input); err != nil {
		return fmt.Errorf("error sending mail: %s", err.Error())
	}
	return nil
}
