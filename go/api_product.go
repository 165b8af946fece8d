package catalogserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the product use cases.
type ProductAPI struct {
	service catalogports.Service
}

func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /api/v1/products
// Adds a product to a branch
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload cataloghttpmapper.CreateProductRequest
	if !bindJSON(c, &payload) {
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), catalogtypes.CreateProductInput{
		BranchID: payload.BranchID,
		Name:     payload.Name,
		Stock:    payload.Stock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/products/%d", BasePath, product.ID))
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(product))
}

// Put /api/v1/products/:id
// Renames a product
func (api *ProductAPI) RenameProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cataloghttpmapper.NameRequest
	if !bindJSON(c, &payload) {
		return
	}
	product, err := api.service.RenameProduct(c.Request.Context(), catalogtypes.RenameInput{ID: id, Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Put /api/v1/products/:id/stock
// Replaces the stock of a product
func (api *ProductAPI) AdjustProductStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload cataloghttpmapper.StockRequest
	if !bindJSON(c, &payload) {
		return
	}
	product, err := api.service.AdjustProductStock(c.Request.Context(), catalogtypes.AdjustStockInput{ProductID: id, Stock: payload.Stock})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Delete /api/v1/products/:id
// Deletes a product
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), catalogtypes.ProductIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
