package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger keeps purchase lines in memory. Append stages every line and
// publishes them together, so a failure part way leaves nothing behind.
type Ledger struct {
	mu         sync.RWMutex
	lines      []domain.PurchaseLine
	receipts   []domain.Receipt
	nextLineID int64
	nextRcptID int64
	now        func() time.Time
	// BeforeWrite, when set, runs before line n (1-based) is staged; an error aborts the append.
	BeforeWrite func(n int, line domain.PurchaseLine) error
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

func (l *Ledger) Append(_ context.Context, clientID int64, lines []domain.PurchaseLine) (*domain.Receipt, error) {
	if len(lines) == 0 {
		return nil, errors.New("no lines to append")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	createdAt := l.now().UTC()
	nextID := l.nextLineID
	staged := make([]domain.PurchaseLine, 0, len(lines))
	for i, line := range lines {
		if l.BeforeWrite != nil {
			if err := l.BeforeWrite(i+1, line); err != nil {
				return nil, err
			}
		}
		line.ClientID = clientID
		if err := line.Validate(); err != nil {
			return nil, err
		}
		nextID++
		line.ID = nextID
		line.CreatedAt = createdAt
		staged = append(staged, line)
	}

	l.nextLineID = nextID
	l.nextRcptID++
	l.lines = append(l.lines, staged...)
	receipt := domain.Receipt{
		CheckoutID: l.nextRcptID,
		ClientID:   clientID,
		Lines:      staged,
		Total:      domain.Total(staged),
		CreatedAt:  createdAt,
	}
	l.receipts = append(l.receipts, receipt)
	out := receipt
	out.Lines = append([]domain.PurchaseLine(nil), staged...)
	return &out, nil
}

func (l *Ledger) ListForClient(_ context.Context, clientID int64) ([]domain.PurchaseLine, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []domain.PurchaseLine{}
	for i := len(l.lines) - 1; i >= 0; i-- {
		if l.lines[i].ClientID == clientID {
			out = append(out, l.lines[i])
		}
	}
	return out, nil
}

func (l *Ledger) CountForClient(_ context.Context, clientID int64) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var count int64
	for _, line := range l.lines {
		if line.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

func (l *Ledger) Receipts(_ context.Context, clientID int64) ([]domain.Receipt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []domain.Receipt{}
	for i := len(l.receipts) - 1; i >= 0; i-- {
		receipt := l.receipts[i]
		if receipt.ClientID != clientID {
			continue
		}
		receipt.Lines = append([]domain.PurchaseLine(nil), receipt.Lines...)
		out = append(out, receipt)
	}
	return out, nil
}

// Referenced adapts the ledger to the client repository's delete guard.
func (l *Ledger) Referenced(clientID int64) bool {
	count, _ := l.CountForClient(context.Background(), clientID)
	return count > 0
}
