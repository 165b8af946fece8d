package types

// CreateFranchiseInput carries the raw name of a new franchise.
type CreateFranchiseInput struct {
	Name string
}

// CreateBranchInput carries the owning franchise and the raw branch name.
type CreateBranchInput struct {
	FranchiseID int64
	Name        string
}

// CreateProductInput carries the owning branch, the raw name and an optional stock (nil means 0).
type CreateProductInput struct {
	BranchID int64
	Name     string
	Stock    *int
}

// RenameInput addresses an entity by id and carries the requested name.
type RenameInput struct {
	ID   int64
	Name string
}

// AdjustStockInput replaces the stock of a product. A nil stock means 0.
type AdjustStockInput struct {
	ProductID int64
	Stock     *int
}

// ProductIdentifier addresses a product. A zero ID is treated as missing.
type ProductIdentifier struct {
	ID int64
}

// FranchiseIdentifier addresses a franchise.
type FranchiseIdentifier struct {
	ID int64
}
