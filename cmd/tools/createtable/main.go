package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS sales_orders (
	  id CHAR(36) NOT NULL,
	  customer_name VARCHAR(140) NOT NULL,
	  customer_email VARCHAR(255) NOT NULL,
	  customer_mobile VARCHAR(32),
	  grand_total BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  paid_at DATETIME(3),
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS sales_order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  price BIGINT NOT NULL,
	  quantity INT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_sales_order_items_order_id (order_id),
	  CONSTRAINT fk_sales_order_items_order FOREIGN KEY (order_id) REFERENCES sales_orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payment_requests (
	  id VARCHAR(64) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  grand_total BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_payment_requests_order_id (order_id),
	  CONSTRAINT fk_payment_requests_order FOREIGN KEY (order_id) REFERENCES sales_orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS checkout_tokens (
	  token VARCHAR(64) NOT NULL,
	  provider_invoice_id VARCHAR(128) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  raw_output JSON,
	  reference_type VARCHAR(64) NOT NULL,
	  reference_id VARCHAR(64) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (token),
	  KEY ix_checkout_tokens_reference (reference_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS checkout_confirm_events (
	  id CHAR(36) NOT NULL,
	  token VARCHAR(64) NOT NULL,
	  provider_status VARCHAR(32) NOT NULL,
	  mapped_status VARCHAR(32) NOT NULL,
	  notified TINYINT(1) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_confirm_events_token (token)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_ledger_entries (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  event VARCHAR(32) NOT NULL,
	  amount BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  ref_type VARCHAR(32) NOT NULL,
	  ref_id VARCHAR(64) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_ledger_order_id (order_id),
	  UNIQUE KEY ux_order_ledger_ref (ref_type, ref_id, event),
	  CONSTRAINT fk_order_ledger_order FOREIGN KEY (order_id) REFERENCES sales_orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("Tables created")
}
