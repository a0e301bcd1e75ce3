package checkout

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/heinja/payments/internal/modules/provider"
)

// mapProviderStatus translates provider invoice statuses into the local
// lifecycle. Conservative on purpose: absence of proof of payment is not
// payment, and only a terminal provider status moves a token to failed.
func mapProviderStatus(s string) string {
	switch s {
	case provider.InvoiceStatusPaid:
		return StatusCompleted
	case provider.InvoiceStatusExpired:
		return StatusFailed
	default:
		return StatusPending
	}
}

// Confirm reconciles the provider's ground-truth status onto the local token
// and returns the browser redirect. This sits behind a guest-facing endpoint,
// so it never returns an error: every failure is logged and collapsed into
// the generic failure redirect.
func (s *Service) Confirm(ctx context.Context, token string) string {
	tok, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "confirm for unknown token", "token", token, "err", err)
		return s.redirects.Build(s.cfg.FailureTarget, "", "")
	}

	inv, err := s.provider.GetInvoice(ctx, tok.ProviderInvoiceID)
	if err != nil {
		// Do not touch the stored status; a later confirm can still settle.
		s.logger.ErrorContext(ctx, "invoice fetch failed during confirm",
			"token", token, "invoice_id", tok.ProviderInvoiceID, "err", err)
		return s.redirects.Build(s.cfg.FailureTarget, "", "")
	}

	mapped := mapProviderStatus(inv.Status)
	notified := false
	location := ""

	switch mapped {
	case StatusCompleted:
		transitioned, terr := s.tokens.MarkCompleted(ctx, token, inv.Raw)
		if terr != nil {
			s.logger.ErrorContext(ctx, "failed to mark token completed", "token", token, "err", terr)
			location = s.redirects.Build(s.cfg.FailureTarget, "", "")
			break
		}

		hints := &RedirectHints{}
		if transitioned {
			// Exactly one confirm wins the pending->completed transition and
			// owns the one-time notification.
			h, nerr := s.refs.PaymentAuthorized(ctx, tok.ReferenceType, tok.ReferenceID, "Completed")
			if nerr != nil {
				s.logger.ErrorContext(ctx, "payment-authorized notification failed",
					"token", token, "reference_type", tok.ReferenceType, "reference_id", tok.ReferenceID, "err", nerr)
			} else {
				notified = true
				if h != nil {
					hints = h
				}
			}
			s.sendReceipt(ctx, tok, inv)
		}
		location = s.redirects.Build(s.successTarget(tok), hints.RedirectTo, hints.RedirectMessage)

	case StatusFailed:
		if _, terr := s.tokens.MarkFailed(ctx, token, inv.Raw); terr != nil {
			s.logger.ErrorContext(ctx, "failed to mark token failed", "token", token, "err", terr)
		}
		location = s.redirects.Build(s.cfg.FailureTarget, "", "")

	default:
		// Not paid yet; leave the token pending so a later confirm can win.
		location = s.redirects.Build(s.cfg.FailureTarget, "", "")
	}

	if err := s.tokens.RecordConfirmEvent(ctx, &ConfirmEvent{
		ID:             uuid.NewString(),
		Token:          token,
		ProviderStatus: inv.Status,
		MappedStatus:   mapped,
		Notified:       notified,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to record confirm event", "token", token, "err", err)
	}

	s.logger.InfoContext(ctx, "checkout confirmed",
		"token", token, "provider_status", inv.Status, "status", mapped, "notified", notified)
	return location
}

func (s *Service) successTarget(tok *CheckoutToken) string {
	q := url.Values{}
	q.Set("reference_type", tok.ReferenceType)
	q.Set("reference_id", tok.ReferenceID)
	return s.cfg.SuccessTarget + "?" + q.Encode()
}

func (s *Service) sendReceipt(ctx context.Context, tok *CheckoutToken, inv *provider.Invoice) {
	if s.notifier == nil {
		return
	}
	r := Receipt{
		ReferenceID: tok.ReferenceID,
		Amount:      inv.Amount,
		Currency:    inv.Currency,
	}
	if ref, err := s.refs.Resolve(ctx, tok.ReferenceType, tok.ReferenceID); err == nil {
		r.Email = ref.CustomerEmail
		r.Name = ref.CustomerName
	}
	if r.Email == "" {
		return
	}
	if err := s.notifier.SendReceipt(ctx, r); err != nil {
		s.logger.WarnContext(ctx, "receipt mail failed", "token", tok.Token, "err", err)
	}
}
