package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	"github.com/Apurer/storefront-admin/internal/domains/clients/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists clients in PostgreSQL using GORM. The unique index on
// tax_id is the authoritative guard; the in-transaction lookup only turns the
// common case into a clean conflict before the insert is attempted.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and runs migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type clientRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;index"`
	TaxID     string    `gorm:"column:tax_id;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

const purchaseLinesTable = "purchase_lines"

func (r *Repository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	record.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := taxIDTaken(tx, record.TaxID, 0)
		if err != nil {
			return err
		}
		if taken {
			return ports.ErrTaxIDTaken
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	clone := *client
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	var saved clientRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&saved, "id = ?", clone.ID).Error; err != nil {
			return err
		}
		taken, err := taxIDTaken(tx, clone.TaxID, clone.ID)
		if err != nil {
			return err
		}
		if taken {
			return ports.ErrTaxIDTaken
		}
		saved.Name = clone.Name
		saved.TaxID = clone.TaxID
		return tx.Save(&saved).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return saved.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record clientRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Client, error) {
	return r.query(ctx, selectClients())
}

func (r *Repository) Search(ctx context.Context, text string) ([]*domain.Client, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(text)) + "%"
	return r.query(ctx, selectClients().Where(sq.Or{
		sq.ILike{"name": pattern},
		sq.Like{"tax_id": pattern},
	}))
}

// Delete re-checks purchase references inside the transaction; the foreign key
// on purchase_lines backs it up.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines int64
		if err := tx.Table(purchaseLinesTable).Where("client_id = ?", id).Count(&lines).Error; err != nil {
			return err
		}
		if lines > 0 {
			return ports.ErrHasPurchases
		}
		result := tx.Where("id = ?", id).Delete(&clientRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *Repository) query(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Client, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	var records []clientRecord
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&records).Error; err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, 0, len(records))
	for i := range records {
		clients = append(clients, records[i].toDomain())
	}
	return clients, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres client repository not configured")
	}
	return nil
}

func selectClients() sq.SelectBuilder {
	return sq.Select("id", "name", "tax_id", "created_at", "updated_at").
		From("clients").
		OrderBy(`name COLLATE "C"`, "id")
}

func taxIDTaken(tx *gorm.DB, taxID string, exceptID int64) (bool, error) {
	var count int64
	err := tx.Model(&clientRecord{}).
		Where("tax_id = ? AND id <> ?", taxID, exceptID).
		Count(&count).Error
	return count > 0, err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ports.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ports.ErrTaxIDTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ports.ErrHasPurchases
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}

func toRecord(client *domain.Client) clientRecord {
	return clientRecord{
		ID:    client.ID,
		Name:  client.Name,
		TaxID: client.TaxID,
	}
}

func (r clientRecord) toDomain() *domain.Client {
	return &domain.Client{
		ID:    r.ID,
		Name:  r.Name,
		TaxID: r.TaxID,
	}
}
