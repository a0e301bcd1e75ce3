package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heinja/payments/internal/modules/checkout"
)

// ReferenceTypePaymentRequest is the only reference type checkouts may settle
// against: a payment request that in turn points at a sales order.
const ReferenceTypePaymentRequest = "payment_request"

// Service owns the reference records and implements checkout.ReferenceResolver.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, logger: slog.Default()}
}

func (s *Service) SetLogger(logger *slog.Logger) { s.logger = logger }

// Resolve walks the payment request -> sales order chain and flattens it into
// what the checkout needs: amounts, the customer block and line items.
func (s *Service) Resolve(ctx context.Context, refType, refID string) (*checkout.ReferenceDetails, error) {
	if refType != ReferenceTypePaymentRequest {
		return nil, fmt.Errorf("%w: %q", ErrNotPaymentRequest, refType)
	}

	var req PaymentRequest
	if err := s.db.WithContext(ctx).First(&req, "id = ?", refID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrRequestNotFound, refID)
		}
		return nil, err
	}

	var order SalesOrder
	if err := s.db.WithContext(ctx).First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %q", ErrOrderNotFound, req.OrderID)
		}
		return nil, err
	}

	var items []OrderItem
	if err := s.db.WithContext(ctx).Order("created_at ASC").
		Find(&items, "order_id = ?", order.ID).Error; err != nil {
		return nil, err
	}

	ref := &checkout.ReferenceDetails{
		Type:          ReferenceTypePaymentRequest,
		ID:            req.ID,
		Amount:        req.GrandTotal,
		Currency:      req.Currency,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
	}
	if order.CustomerMobile != nil {
		ref.CustomerMobile = *order.CustomerMobile
	}
	for _, it := range items {
		ref.Items = append(ref.Items, checkout.LineItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return ref, nil
}

// PaymentAuthorized marks the payment request and its order as paid and books
// the settlement in the ledger. Safe to call more than once; only the first
// call changes anything. Returns hints pointing the payer at the order page.
func (s *Service) PaymentAuthorized(ctx context.Context, refType, refID, status string) (*checkout.RedirectHints, error) {
	if refType != ReferenceTypePaymentRequest {
		return nil, fmt.Errorf("%w: %q", ErrNotPaymentRequest, refType)
	}

	var req PaymentRequest
	if err := s.db.WithContext(ctx).First(&req, "id = ?", refID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrRequestNotFound, refID)
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Model(&PaymentRequest{}).
			Where("id = ? AND status = ?", req.ID, RequestStatusRequested).
			Updates(map[string]any{"status": RequestStatusPaid, "updated_at": now}).Error; err != nil {
			return err
		}

		paidAt := now
		if err := tx.Model(&SalesOrder{}).
			Where("id = ? AND status = ?", req.OrderID, OrderStatusCreated).
			Updates(map[string]any{"status": OrderStatusPaid, "paid_at": &paidAt, "updated_at": now}).Error; err != nil {
			return err
		}

		entry := LedgerEntry{
			ID:        uuid.NewString(),
			OrderID:   req.OrderID,
			Event:     "payment_completed",
			Amount:    req.GrandTotal,
			Currency:  req.Currency,
			RefType:   ReferenceTypePaymentRequest,
			RefID:     req.ID,
			CreatedAt: now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			// unique(ref_type, ref_id, event): already booked by an earlier call
			if isDup(err) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment authorized",
		"payment_request", req.ID, "order", req.OrderID, "status", status)

	return &checkout.RedirectHints{
		RedirectTo:      "orders/" + req.OrderID,
		RedirectMessage: "Payment received. Thank you!",
	}, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
