package repository

import (
	"context"
	"errors"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	domainRepo "github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) GetWithLedger(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Supplier{})

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}

func (r *supplierRepository) AddDelivery(ctx context.Context, delivery *entity.SupplierDelivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *supplierRepository) AddPayment(ctx context.Context, payment *entity.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *supplierRepository) SumDeliveries(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.SupplierDelivery{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("supplier_id = ?", supplierID).
		Scan(&sum).Error
	return sum, err
}

func (r *supplierRepository) SumPayments(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.SupplierPayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("supplier_id = ?", supplierID).
		Scan(&sum).Error
	return sum, err
}

func (r *supplierRepository) TotalOutstanding(ctx context.Context) (int64, error) {
	var deliveries, payments int64
	if err := r.db.WithContext(ctx).Model(&entity.SupplierDelivery{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&deliveries).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.SupplierPayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&payments).Error; err != nil {
		return 0, err
	}
	return deliveries - payments, nil
}
