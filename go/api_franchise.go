package catalogserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// FranchiseAPI wires HTTP transport with the catalog service and provisioning workflows.
type FranchiseAPI struct {
	service   catalogports.Service
	workflows catalogports.WorkflowOrchestrator
}

// NewFranchiseAPI creates a FranchiseAPI backed by the provided service.
func NewFranchiseAPI(service catalogports.Service, workflows catalogports.WorkflowOrchestrator) FranchiseAPI {
	return FranchiseAPI{service: service, workflows: workflows}
}

// Post /api/v1/franchises
// Creates a franchise
func (api *FranchiseAPI) CreateFranchise(c *gin.Context) {
	var payload cataloghttpmapper.NameRequest
	if !bindJSON(c, &payload) {
		return
	}
	franchise, err := api.service.CreateFranchise(c.Request.Context(), catalogtypes.CreateFranchiseInput{Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/franchises/%d", BasePath, franchise.ID))
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainFranchise(franchise))
}

// Put /api/v1/franchises/:id
// Renames a franchise
func (api *FranchiseAPI) RenameFranchise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cataloghttpmapper.NameRequest
	if !bindJSON(c, &payload) {
		return
	}
	franchise, err := api.service.RenameFranchise(c.Request.Context(), catalogtypes.RenameInput{ID: id, Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainFranchise(franchise))
}

// Get /api/v1/franchises/:id/top-products
// Lists the best-stocked product of every branch
func (api *FranchiseAPI) TopProductPerBranch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rows, err := api.service.TopProductPerBranch(c.Request.Context(), catalogtypes.FranchiseIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainTopProducts(rows))
}

// Post /api/v1/franchises/provision
// Onboards a franchise together with its branches and products
func (api *FranchiseAPI) ProvisionFranchise(c *gin.Context) {
	var payload cataloghttpmapper.ProvisionFranchiseRequest
	if !bindJSON(c, &payload) {
		return
	}
	input := cataloghttpmapper.ToProvisionInput(payload)
	input.IdempotencyKey = c.GetHeader("Idempotency-Key")
	result, err := api.provision(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.Franchise != nil {
		c.Header("Location", fmt.Sprintf("%s/franchises/%d", BasePath, result.Franchise.ID))
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromProvisionResult(result))
}

func (api *FranchiseAPI) provision(ctx context.Context, input catalogtypes.ProvisionFranchiseInput) (*catalogtypes.ProvisionFranchiseResult, error) {
	if api.workflows == nil {
		return nil, fmt.Errorf("franchise provisioning not configured")
	}
	return api.workflows.ProvisionFranchise(ctx, input)
}
