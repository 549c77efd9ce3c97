package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"cyberdesk-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	invoiceSequenceName = "bills"
	maxInvoiceAttempts  = 5
)

// LineItem is one row of the billing form.
type LineItem struct {
	Label     string
	Quantity  int
	UnitPrice int
}

// Billable reports whether the item contributes to a bill. Rows with an
// empty label or a non-positive quantity are left out.
func (li LineItem) Billable() bool {
	return strings.TrimSpace(li.Label) != "" && li.Quantity > 0
}

// Total is quantity times unit price. ok is false when it does not fit in
// an int.
func (li LineItem) Total() (total int, ok bool) {
	return mulInt(li.Quantity, li.UnitPrice)
}

func (li LineItem) String() string {
	total, _ := li.Total()
	return fmt.Sprintf("%s: %d x %d = %d", strings.TrimSpace(li.Label), li.Quantity, li.UnitPrice, total)
}

// SummarizeItems renders billable items one per line, in input order, and
// sums their totals. Amounts that overflow are a validation error.
func SummarizeItems(items []LineItem) (text string, subtotal int, count int, err error) {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		if !item.Billable() {
			continue
		}
		total, ok := item.Total()
		if ok {
			subtotal, ok = addInt(subtotal, total)
		}
		if !ok {
			return "", 0, 0, fmt.Errorf("%w: amount in row %d is too large", ErrValidation, i+1)
		}
		lines = append(lines, item.String())
	}
	return strings.Join(lines, "\n"), subtotal, len(lines), nil
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return p, true
}

func addInt(a, b int) (int, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

type BillService struct {
	db       *gorm.DB
	notifier BillNotifier
}

// NewBillService builds the service. A nil notifier disables receipts.
func NewBillService(db *gorm.DB, notifier BillNotifier) *BillService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &BillService{db: db, notifier: notifier}
}

// Assemble turns the form's line items into a persisted bill with the next
// invoice number. The discount is subtracted as is, so the total may go
// negative.
func (s *BillService) Assemble(ctx context.Context, customerID uint, items []LineItem, discount int) (*models.Bill, error) {
	if discount < 0 {
		return nil, fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	}

	text, subtotal, count, err := SummarizeItems(items)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: add at least one item with a name and quantity", ErrValidation)
	}
	total, ok := addInt(subtotal, -discount)
	if !ok {
		return nil, fmt.Errorf("%w: discount is too large", ErrValidation)
	}

	customer, err := requireCustomer(s.db.WithContext(ctx), customerID)
	if err != nil {
		return nil, err
	}

	bill := &models.Bill{
		CustomerID: customerID,
		Items:      text,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      total,
	}

	for attempt := 1; ; attempt++ {
		bill.ID = 0
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := allocateInvoiceNumber(tx)
			if err != nil {
				return err
			}
			bill.InvoiceNumber = number
			return tx.Create(bill).Error
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxInvoiceAttempts {
			log.Printf("[BILL] invoice number %d taken, retrying (attempt %d)", bill.InvoiceNumber, attempt)
			continue
		}
		return nil, fmt.Errorf("create bill: %w", err)
	}

	if err := s.notifier.NotifyBillCreated(customer, bill); err != nil {
		log.Printf("[BILL] receipt for invoice %d not sent: %v", bill.InvoiceNumber, err)
	}
	return bill, nil
}

// NextInvoiceNumber previews the number the next bill will receive.
func (s *BillService) NextInvoiceNumber(ctx context.Context) (int, error) {
	last, err := lastInvoiceNumber(s.db.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (s *BillService) Get(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.WithContext(ctx).First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return &bill, nil
}

// GetWithCustomer loads a bill and the customer it was issued to.
func (s *BillService) GetWithCustomer(ctx context.Context, id uint) (*models.Bill, *models.Customer, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	customer, err := requireCustomer(s.db.WithContext(ctx), bill.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	return bill, customer, nil
}

// ListByCustomer returns the customer's bills, newest first.
func (s *BillService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Bill, error) {
	var bills []models.Bill
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("invoice_number DESC").
		Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// allocateInvoiceNumber advances the persisted sequence inside tx. The
// sequence never moves backwards, so numbers of deleted bills are not
// handed out again. The unique index on bills.invoice_number catches two
// transactions that read the same value.
func allocateInvoiceNumber(tx *gorm.DB) (int, error) {
	last, err := lastInvoiceNumber(tx)
	if err != nil {
		return 0, err
	}

	seq := models.InvoiceSequence{Name: invoiceSequenceName, LastValue: last + 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_value"}),
	}).Create(&seq).Error; err != nil {
		return 0, fmt.Errorf("advance invoice sequence: %w", err)
	}
	return seq.LastValue, nil
}

// lastInvoiceNumber is the highest number ever issued: the larger of the
// stored sequence and the current maximum over bills.
func lastInvoiceNumber(db *gorm.DB) (int, error) {
	var maxNumber int
	if err := db.Model(&models.Bill{}).
		Select("COALESCE(MAX(invoice_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return 0, fmt.Errorf("read max invoice number: %w", err)
	}

	var seq models.InvoiceSequence
	err := db.Where("name = ?", invoiceSequenceName).First(&seq).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("read invoice sequence: %w", err)
	}

	return max(seq.LastValue, maxNumber), nil
}
