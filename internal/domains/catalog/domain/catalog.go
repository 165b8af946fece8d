package domain

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired  = errors.New("name required")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Franchise is the top-level catalog entity. Its name is unique across all franchises.
type Franchise struct {
	ID   int64
	Name string
}

// Branch belongs to exactly one franchise. Its name is unique within that franchise.
type Branch struct {
	ID          int64
	FranchiseID int64
	Name        string
}

// Product belongs to exactly one branch and carries a non-negative stock count.
// Its name is unique within that branch.
type Product struct {
	ID       int64
	BranchID int64
	Name     string
	Stock    int
}

// TopProduct is the read-only projection holding the most stocked product of one branch.
type TopProduct struct {
	FranchiseID   int64
	FranchiseName string
	BranchID      int64
	BranchName    string
	ProductID     int64
	ProductName   string
	Stock         int
}

// NormalizeName trims surrounding whitespace and rejects blank names.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

// NormalizeStock coerces a missing stock to zero and rejects negative values.
func NormalizeStock(raw *int) (int, error) {
	if raw == nil {
		return 0, nil
	}
	if *raw < 0 {
		return 0, ErrNegativeStock
	}
	return *raw, nil
}
