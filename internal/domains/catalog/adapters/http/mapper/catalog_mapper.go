package mapper

import (
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
)

// Franchise is the transport shape of a franchise.
type Franchise struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branch is the transport shape of a branch.
type Branch struct {
	ID          int64  `json:"id"`
	FranchiseID int64  `json:"franchiseId"`
	Name        string `json:"name"`
}

// Product is the transport shape of a product.
type Product struct {
	ID       int64  `json:"id"`
	BranchID int64  `json:"branchId"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
}

// TopProduct is one row of the top-product-per-branch report.
type TopProduct struct {
	FranchiseID   int64  `json:"franchiseId"`
	FranchiseName string `json:"franchiseName"`
	BranchID      int64  `json:"branchId"`
	BranchName    string `json:"branchName"`
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	Stock         int    `json:"stock"`
}

// NameRequest carries a raw name. Blank names are rejected by the service, not the binder.
type NameRequest struct {
	Name string `json:"name"`
}

type CreateBranchRequest struct {
	FranchiseID int64  `json:"franchiseId"`
	Name        string `json:"name"`
}

type CreateProductRequest struct {
	BranchID int64  `json:"branchId"`
	Name     string `json:"name"`
	Stock    *int   `json:"stock"`
}

type StockRequest struct {
	Stock *int `json:"stock"`
}

// ProvisionFranchiseRequest onboards a franchise with its branches and products in one call.
type ProvisionFranchiseRequest struct {
	Name     string                   `json:"name"`
	Branches []ProvisionBranchRequest `json:"branches"`
}

type ProvisionBranchRequest struct {
	Name     string                    `json:"name"`
	Products []ProvisionProductRequest `json:"products"`
}

type ProvisionProductRequest struct {
	Name  string `json:"name"`
	Stock *int   `json:"stock"`
}

// ProvisionedFranchise is the response of a provisioning run.
type ProvisionedFranchise struct {
	Franchise Franchise           `json:"franchise"`
	Branches  []ProvisionedBranch `json:"branches"`
}

type ProvisionedBranch struct {
	Branch   Branch    `json:"branch"`
	Products []Product `json:"products"`
}

func FromDomainFranchise(franchise *catalogdomain.Franchise) Franchise {
	if franchise == nil {
		return Franchise{}
	}
	return Franchise{ID: franchise.ID, Name: franchise.Name}
}

func FromDomainBranch(branch *catalogdomain.Branch) Branch {
	if branch == nil {
		return Branch{}
	}
	return Branch{ID: branch.ID, FranchiseID: branch.FranchiseID, Name: branch.Name}
}

func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{ID: product.ID, BranchID: product.BranchID, Name: product.Name, Stock: product.Stock}
}

// FromDomainTopProducts never returns nil so empty reports encode as [].
func FromDomainTopProducts(rows []catalogdomain.TopProduct) []TopProduct {
	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			FranchiseID:   row.FranchiseID,
			FranchiseName: row.FranchiseName,
			BranchID:      row.BranchID,
			BranchName:    row.BranchName,
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			Stock:         row.Stock,
		})
	}
	return out
}

// ToProvisionInput converts the transport request into the workflow input.
func ToProvisionInput(req ProvisionFranchiseRequest) catalogtypes.ProvisionFranchiseInput {
	input := catalogtypes.ProvisionFranchiseInput{Name: req.Name}
	for _, branch := range req.Branches {
		branchInput := catalogtypes.ProvisionBranchInput{Name: branch.Name}
		for _, product := range branch.Products {
			branchInput.Products = append(branchInput.Products, catalogtypes.ProvisionProductInput{
				Name:  product.Name,
				Stock: product.Stock,
			})
		}
		input.Branches = append(input.Branches, branchInput)
	}
	return input
}

func FromProvisionResult(result *catalogtypes.ProvisionFranchiseResult) ProvisionedFranchise {
	if result == nil {
		return ProvisionedFranchise{Branches: []ProvisionedBranch{}}
	}
	out := ProvisionedFranchise{
		Franchise: FromDomainFranchise(result.Franchise),
		Branches:  make([]ProvisionedBranch, 0, len(result.Branches)),
	}
	for _, branch := range result.Branches {
		provisioned := ProvisionedBranch{
			Branch:   FromDomainBranch(branch.Branch),
			Products: make([]Product, 0, len(branch.Products)),
		}
		for _, product := range branch.Products {
			provisioned.Products = append(provisioned.Products, FromDomainProduct(product))
		}
		out.Branches = append(out.Branches, provisioned)
	}
	return out
}
