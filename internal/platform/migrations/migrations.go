package migrations

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TopProductViewName is the read model queried for the top product of each branch.
const TopProductViewName = "v_top_product_per_branch"

// topProductViewSQL keeps one row per branch that has products. Highest stock wins,
// ties go to the smaller product name and then the smaller product id.
const topProductViewSQL = `CREATE OR REPLACE VIEW ` + TopProductViewName + ` AS
SELECT DISTINCT ON (b.id)
	f.id    AS franchise_id,
	f.name  AS franchise_name,
	b.id    AS branch_id,
	b.name  AS branch_name,
	p.id    AS product_id,
	p.name  AS product_name,
	p.stock AS stock
FROM branches b
JOIN franchises f ON f.id = b.franchise_id
JOIN products p ON p.branch_id = b.id
ORDER BY b.id, p.stock DESC, p.name ASC, p.id ASC`

// Run applies the catalog schema and (re)creates the top product view.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&franchiseRecord{},
		&branchRecord{},
		&productRecord{},
	); err != nil {
		return fmt.Errorf("migrate catalog tables: %w", err)
	}
	if err := db.Exec(topProductViewSQL).Error; err != nil {
		return fmt.Errorf("create %s: %w", TopProductViewName, err)
	}
	return nil
}

// Franchise schema mirrors the catalog Postgres adapter.
type franchiseRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;type:text;not null;uniqueIndex:idx_franchises_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (franchiseRecord) TableName() string { return "franchises" }

type branchRecord struct {
	ID          int64            `gorm:"primaryKey;column:id"`
	FranchiseID int64            `gorm:"column:franchise_id;not null;uniqueIndex:idx_branches_franchise_name,priority:1"`
	Name        string           `gorm:"column:name;type:text;not null;uniqueIndex:idx_branches_franchise_name,priority:2"`
	Franchise   *franchiseRecord `gorm:"foreignKey:FranchiseID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}

func (branchRecord) TableName() string { return "branches" }

type productRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	BranchID  int64         `gorm:"column:branch_id;not null;uniqueIndex:idx_products_branch_name,priority:1"`
	Name      string        `gorm:"column:name;type:text;not null;uniqueIndex:idx_products_branch_name,priority:2"`
	Stock     int           `gorm:"column:stock;not null;default:0;check:chk_products_stock,stock >= 0"`
	Branch    *branchRecord `gorm:"foreignKey:BranchID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }
