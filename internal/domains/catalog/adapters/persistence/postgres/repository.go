package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

var (
	_ ports.FranchiseRepository = (*FranchiseRepository)(nil)
	_ ports.BranchRepository    = (*BranchRepository)(nil)
	_ ports.ProductRepository   = (*ProductRepository)(nil)
)

var errNotConfigured = errors.New("postgres catalog repository not configured")

// FranchiseRepository persists franchises in PostgreSQL using GORM.
// The schema is owned by internal/platform/migrations.
type FranchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

func (r *FranchiseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNotConfigured
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&franchiseRecord{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FranchiseRepository) FindByID(ctx context.Context, id int64) (*domain.Franchise, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record franchiseRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *FranchiseRepository) Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if franchise.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	record := franchiseRecord{Name: franchise.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *FranchiseRepository) UpdateName(ctx context.Context, id int64, name string) (*domain.Franchise, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if err := updateColumns(ctx, r.db, &franchiseRecord{}, id, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// BranchRepository persists branches in PostgreSQL using GORM.
type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) ExistsByFranchiseIDAndName(ctx context.Context, franchiseID int64, name string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNotConfigured
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&branchRecord{}).
		Where("franchise_id = ? AND name = ?", franchiseID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id int64) (*domain.Branch, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record branchRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *BranchRepository) Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if branch.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	record := branchRecord{FranchiseID: branch.FranchiseID, Name: branch.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *BranchRepository) UpdateName(ctx context.Context, id int64, name string) (*domain.Branch, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if err := updateColumns(ctx, r.db, &branchRecord{}, id, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// ProductRepository persists products in PostgreSQL using GORM.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ExistsByBranchIDAndName(ctx context.Context, branchID int64, name string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNotConfigured
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("branch_id = ? AND name = ?", branchID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if product.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	record := productRecord{BranchID: product.BranchID, Name: product.Name, Stock: product.Stock}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) UpdateName(ctx context.Context, id int64, name string) (*domain.Product, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if err := updateColumns(ctx, r.db, &productRecord{}, id, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	if err := updateColumns(ctx, r.db, &productRecord{}, id, map[string]any{"stock": stock}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errNotConfigured
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// updateColumns updates a single row and reports ErrNotFound when nothing matched.
func updateColumns(ctx context.Context, db *gorm.DB, model any, id int64, columns map[string]any) error {
	columns["updated_at"] = gorm.Expr("NOW()")
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
