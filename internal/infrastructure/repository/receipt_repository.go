package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Cashier").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

// Delete removes a receipt and its items. Only used to unwind a checkout
// whose stock decrement failed, never exposed as an API operation.
func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ReceiptItem{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Receipt{}, "id = ?", id).Error
	})
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.Refunded != nil {
		query = query.Where("refunded = ?", *params.Refunded)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("Cashier").
		Order(sortBy + " " + sortOrder).
		Find(&receipts).Error

	return receipts, total, err
}

// ListWithCursor returns receipts using cursor-based pagination
func (r *receiptRepository) ListWithCursor(ctx context.Context, params *domainRepo.ReceiptCursorFilterParams) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.Refunded != nil {
		query = query.Where("refunded = ?", *params.Refunded)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch one extra row to detect whether another page exists
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Items").
		Preload("Cashier").
		Order("created_at ASC, id ASC").
		Find(&receipts).Error

	return receipts, err
}

// MarkRefunded flips the refunded flag only when it is still unset. The
// conditional write makes the first caller win and every later caller see
// false, regardless of interleaving.
func (r *receiptRepository) MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id = ? AND refunded = ?", id, false).
		Update("refunded", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *receiptRepository) SalesTotals(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var row struct {
		Receipts int64
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COUNT(*) AS receipts, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	return row.Receipts, row.Total, err
}

func (r *receiptRepository) DailySales(ctx context.Context, from, to time.Time) ([]domainRepo.DailySalesRow, error) {
	var rows []domainRepo.DailySalesRow
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("DATE(created_at) AS day, COUNT(*) AS receipts, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *gorm.DB) domainRepo.RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, record *entity.RefundRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *refundRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RefundRecord, error) {
	var record entity.RefundRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *refundRepository) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]entity.RefundRecord, error) {
	var records []entity.RefundRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *refundRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RefundRecord, int64, error) {
	var records []entity.RefundRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RefundRecord{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&records).Error

	return records, total, err
}
