package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

var _ ports.TopProductQuery = (*TopProductQuery)(nil)

const topProductsByFranchiseSQL = `SELECT franchise_id, franchise_name, branch_id, branch_name, product_id, product_name, stock
FROM v_top_product_per_branch
WHERE franchise_id = $1
ORDER BY branch_id`

// TopProductQuery reads the v_top_product_per_branch view. The view owns the tie-break policy.
type TopProductQuery struct {
	db *sql.DB
}

func NewTopProductQuery(db *sql.DB) *TopProductQuery {
	return &TopProductQuery{db: db}
}

func (q *TopProductQuery) FindByFranchiseID(ctx context.Context, franchiseID int64) ([]domain.TopProduct, error) {
	if q == nil || q.db == nil {
		return nil, errors.New("postgres top product query not configured")
	}
	rows, err := q.db.QueryContext(ctx, topProductsByFranchiseSQL, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.TopProduct{}
	for rows.Next() {
		var row domain.TopProduct
		if err := rows.Scan(
			&row.FranchiseID,
			&row.FranchiseName,
			&row.BranchID,
			&row.BranchName,
			&row.ProductID,
			&row.ProductName,
			&row.Stock,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
