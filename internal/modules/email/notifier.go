package email

import (
	"context"
	"fmt"

	"github.com/heinja/payments/internal/modules/checkout"
)

// ReceiptNotifier mails the payer once a checkout settles. Implements
// checkout.ReceiptNotifier.
type ReceiptNotifier struct {
	svc Service
}

func NewReceiptNotifier(svc Service) *ReceiptNotifier {
	return &ReceiptNotifier{svc: svc}
}

func (n *ReceiptNotifier) SendReceipt(_ context.Context, r checkout.Receipt) error {
	subject := "Payment received - " + r.ReferenceID
	amount := fmt.Sprintf("%s %d", r.Currency, r.Amount)

	textBody := "Hello " + r.Name + ",\n\n" +
		"We received your payment of " + amount + " for " + r.ReferenceID + ".\n\nThank you!"

	htmlBody := `
<html>
  <body style="font-family: sans-serif;">
    <h2>Payment received</h2>
    <p>Hello ` + r.Name + `,</p>
    <p>We received your payment.</p>
    <p><strong>Reference:</strong> ` + r.ReferenceID + `</p>
    <p><strong>Amount:</strong> ` + amount + `</p>
    <p>Thank you!</p>
  </body>
</html>
`

	return n.svc.SendEmail(r.Email, r.Name, subject, htmlBody, textBody)
}
