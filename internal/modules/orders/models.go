package orders

import "time"

const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"

	RequestStatusRequested = "requested"
	RequestStatusPaid      = "paid"
)

type SalesOrder struct {
	ID             string     `gorm:"type:char(36);primaryKey"`
	CustomerName   string     `gorm:"type:varchar(140);not null"`
	CustomerEmail  string     `gorm:"type:varchar(255);not null"`
	CustomerMobile *string    `gorm:"type:varchar(32)"`
	GrandTotal     int64      `gorm:"not null"`
	Currency       string     `gorm:"type:char(3);not null"`
	Status         string     `gorm:"type:varchar(32);not null"`
	PaidAt         *time.Time `gorm:"type:datetime(3)"`
	CreatedAt      time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt      time.Time  `gorm:"type:datetime(3);not null"`
}

func (SalesOrder) TableName() string { return "sales_orders" }

type OrderItem struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	OrderID   string    `gorm:"type:char(36);not null;index:ix_sales_order_items_order_id"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "sales_order_items" }

// PaymentRequest is the payable reference record a checkout settles against.
// Its id doubles as the checkout token.
type PaymentRequest struct {
	ID         string    `gorm:"type:varchar(64);primaryKey"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_payment_requests_order_id"`
	GrandTotal int64     `gorm:"not null"`
	Currency   string    `gorm:"type:char(3);not null"`
	Status     string    `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (PaymentRequest) TableName() string { return "payment_requests" }

// LedgerEntry records money movements against an order. Unique on
// (ref_type, ref_id, event) so a settlement is booked at most once.
type LedgerEntry struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	OrderID   string    `gorm:"type:char(36);not null;index:ix_order_ledger_order_id"`
	Event     string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_order_ledger_ref,priority:3"`
	Amount    int64     `gorm:"not null"`
	Currency  string    `gorm:"type:char(3);not null"`
	RefType   string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_order_ledger_ref,priority:1"`
	RefID     string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_order_ledger_ref,priority:2"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (LedgerEntry) TableName() string { return "order_ledger_entries" }
