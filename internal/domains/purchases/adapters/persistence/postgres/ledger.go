package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger persists purchase lines in PostgreSQL using GORM.
type Ledger struct {
	db *gorm.DB
}

// NewLedger wires a PostgreSQL-backed ledger. Caller manages DB lifecycle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

type purchaseLineRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	ClientID    int64           `gorm:"column:client_id;index"`
	Description string          `gorm:"column:description"`
	Quantity    int             `gorm:"column:quantity"`
	UnitCost    decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (purchaseLineRecord) TableName() string { return "purchase_lines" }

type checkoutRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	ClientID  int64           `gorm:"column:client_id;index"`
	LineIDs   pq.Int64Array   `gorm:"column:line_ids;type:bigint[]"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (checkoutRecord) TableName() string { return "checkouts" }

// Append inserts the lines one by one and the checkout header last, all in one
// transaction.
func (l *Ledger) Append(ctx context.Context, clientID int64, lines []domain.PurchaseLine) (*domain.Receipt, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("no lines to append")
	}
	createdAt := time.Now().UTC()
	receipt := &domain.Receipt{ClientID: clientID, CreatedAt: createdAt}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(pq.Int64Array, 0, len(lines))
		saved := make([]domain.PurchaseLine, 0, len(lines))
		for _, line := range lines {
			line.ClientID = clientID
			if err := line.Validate(); err != nil {
				return err
			}
			record := toRecord(line)
			record.CreatedAt = createdAt
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			ids = append(ids, record.ID)
			saved = append(saved, record.toDomain())
		}
		header := checkoutRecord{
			ClientID:  clientID,
			LineIDs:   ids,
			Total:     domain.Total(saved),
			CreatedAt: createdAt,
		}
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		receipt.CheckoutID = header.ID
		receipt.Lines = saved
		receipt.Total = header.Total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (l *Ledger) ListForClient(ctx context.Context, clientID int64) ([]domain.PurchaseLine, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var records []purchaseLineRecord
	if err := l.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	lines := make([]domain.PurchaseLine, 0, len(records))
	for i := range records {
		lines = append(lines, records[i].toDomain())
	}
	return lines, nil
}

func (l *Ledger) CountForClient(ctx context.Context, clientID int64) (int64, error) {
	if err := l.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := l.db.WithContext(ctx).Model(&purchaseLineRecord{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

// Receipts lists the checkout headers of a client, newest first.
func (l *Ledger) Receipts(ctx context.Context, clientID int64) ([]domain.Receipt, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var headers []checkoutRecord
	if err := l.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id DESC").Find(&headers).Error; err != nil {
		return nil, err
	}
	receipts := make([]domain.Receipt, 0, len(headers))
	for _, header := range headers {
		var records []purchaseLineRecord
		if len(header.LineIDs) > 0 {
			if err := l.db.WithContext(ctx).Where("id = ANY(?)", header.LineIDs).Order("id").Find(&records).Error; err != nil {
				return nil, err
			}
		}
		lines := make([]domain.PurchaseLine, 0, len(records))
		for i := range records {
			lines = append(lines, records[i].toDomain())
		}
		receipts = append(receipts, domain.Receipt{
			CheckoutID: header.ID,
			ClientID:   header.ClientID,
			Lines:      lines,
			Total:      header.Total,
			CreatedAt:  header.CreatedAt,
		})
	}
	return receipts, nil
}

func (l *Ledger) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("postgres purchase ledger not configured")
	}
	return nil
}

func toRecord(line domain.PurchaseLine) purchaseLineRecord {
	return purchaseLineRecord{
		ClientID:    line.ClientID,
		Description: line.Description,
		Quantity:    line.Quantity,
		UnitCost:    line.UnitCost,
	}
}

func (r purchaseLineRecord) toDomain() domain.PurchaseLine {
	return domain.PurchaseLine{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
		CreatedAt:   r.CreatedAt,
	}
}
