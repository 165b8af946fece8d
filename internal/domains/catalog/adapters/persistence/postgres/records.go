package postgres

import (
	"time"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
)

// franchiseRecord maps a franchise to the franchises table.
type franchiseRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (franchiseRecord) TableName() string { return "franchises" }

type branchRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	FranchiseID int64     `gorm:"column:franchise_id"`
	Name        string    `gorm:"column:name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (branchRecord) TableName() string { return "branches" }

type productRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	BranchID  int64     `gorm:"column:branch_id"`
	Name      string    `gorm:"column:name"`
	Stock     int       `gorm:"column:stock"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r franchiseRecord) toDomain() *domain.Franchise {
	return &domain.Franchise{ID: r.ID, Name: r.Name}
}

func (r branchRecord) toDomain() *domain.Branch {
	return &domain.Branch{ID: r.ID, FranchiseID: r.FranchiseID, Name: r.Name}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{ID: r.ID, BranchID: r.BranchID, Name: r.Name, Stock: r.Stock}
}
