package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&clientRecord{},
		&purchaseLineRecord{},
		&checkoutRecord{},
		&checkoutIdempotencyRecord{},
		&adminRecord{},
		&sessionRecord{},
	)
}

// Client schema mirrors the clients Postgres adapter. The unique index on
// tax_id is the authoritative uniqueness guard.
type clientRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null;index"`
	TaxID     string    `gorm:"column:tax_id;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

// Purchase line schema mirrors the purchases Postgres ledger. Clients with
// purchases cannot be deleted.
type purchaseLineRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	ClientID    int64           `gorm:"column:client_id;not null;index"`
	Client      clientRecord    `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Description string          `gorm:"column:description;not null"`
	Quantity    int             `gorm:"column:quantity;not null;check:chk_purchase_lines_quantity,quantity >= 1"`
	UnitCost    decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null;check:chk_purchase_lines_unit_cost,unit_cost >= 0"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
}

func (purchaseLineRecord) TableName() string { return "purchase_lines" }

// Checkout headers group the lines written by one commit.
type checkoutRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	ClientID  int64           `gorm:"column:client_id;not null;index"`
	Client    clientRecord    `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	LineIDs   pq.Int64Array   `gorm:"column:line_ids;type:bigint[]"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (checkoutRecord) TableName() string { return "checkouts" }

// Idempotency keys let a retried checkout replay its receipt.
type checkoutIdempotencyRecord struct {
	Key        string    `gorm:"primaryKey;column:key;size:255"`
	ClientID   int64     `gorm:"column:client_id;not null"`
	CheckoutID int64     `gorm:"column:checkout_id;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (checkoutIdempotencyRecord) TableName() string { return "checkout_idempotency_keys" }

type adminRecord struct {
	Username     string    `gorm:"primaryKey;column:username;size:128"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adminRecord) TableName() string { return "admins" }

// Session schema mirrors the auth session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	Username  string    `gorm:"column:username;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "admin_sessions" }
