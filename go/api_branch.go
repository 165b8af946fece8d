package catalogserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// BranchAPI wires HTTP transport with the branch use cases.
type BranchAPI struct {
	service catalogports.Service
}

func NewBranchAPI(service catalogports.Service) BranchAPI {
	return BranchAPI{service: service}
}

// Post /api/v1/branches
// Adds a branch to a franchise
func (api *BranchAPI) CreateBranch(c *gin.Context) {
	var payload cataloghttpmapper.CreateBranchRequest
	if !bindJSON(c, &payload) {
		return
	}
	branch, err := api.service.CreateBranch(c.Request.Context(), catalogtypes.CreateBranchInput{
		FranchiseID: payload.FranchiseID,
		Name:        payload.Name,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/branches/%d", BasePath, branch.ID))
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainBranch(branch))
}

// Put /api/v1/branches/:id
// Renames a branch
func (api *BranchAPI) RenameBranch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cataloghttpmapper.NameRequest
	if !bindJSON(c, &payload) {
		return
	}
	branch, err := api.service.RenameBranch(c.Request.Context(), catalogtypes.RenameInput{ID: id, Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBranch(branch))
}
