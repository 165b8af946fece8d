package types

import "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"

// ProvisionFranchiseInput describes a franchise to onboard together with its branches and products.
// A non-empty IdempotencyKey makes retries of the same request share one durable run.
type ProvisionFranchiseInput struct {
	Name           string
	Branches       []ProvisionBranchInput
	IdempotencyKey string
}

type ProvisionBranchInput struct {
	Name     string
	Products []ProvisionProductInput
}

type ProvisionProductInput struct {
	Name  string
	Stock *int
}

// ProvisionFranchiseResult lists everything created by a provisioning run, in creation order.
type ProvisionFranchiseResult struct {
	Franchise *domain.Franchise
	Branches  []ProvisionedBranch
}

type ProvisionedBranch struct {
	Branch   *domain.Branch
	Products []*domain.Product
}
