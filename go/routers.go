package catalogserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath prefixes every catalog route.
const BasePath = "/api/v1"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	FranchiseAPI FranchiseAPI
	BranchAPI    BranchAPI
	ProductAPI   ProductAPI
	// Metrics serves the Prometheus scrape endpoint when set.
	Metrics http.Handler
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the catalog routes to an existing gin engine.
// Middleware must be attached to router before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	routes := []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"CreateFranchise", http.MethodPost, BasePath + "/franchises", handleFunctions.FranchiseAPI.CreateFranchise},
		{"ProvisionFranchise", http.MethodPost, BasePath + "/franchises/provision", handleFunctions.FranchiseAPI.ProvisionFranchise},
		{"RenameFranchise", http.MethodPut, BasePath + "/franchises/:id", handleFunctions.FranchiseAPI.RenameFranchise},
		{"TopProductPerBranch", http.MethodGet, BasePath + "/franchises/:id/top-products", handleFunctions.FranchiseAPI.TopProductPerBranch},
		{"CreateBranch", http.MethodPost, BasePath + "/branches", handleFunctions.BranchAPI.CreateBranch},
		{"RenameBranch", http.MethodPut, BasePath + "/branches/:id", handleFunctions.BranchAPI.RenameBranch},
		{"CreateProduct", http.MethodPost, BasePath + "/products", handleFunctions.ProductAPI.CreateProduct},
		{"RenameProduct", http.MethodPut, BasePath + "/products/:id", handleFunctions.ProductAPI.RenameProduct},
		{"AdjustProductStock", http.MethodPut, BasePath + "/products/:id/stock", handleFunctions.ProductAPI.AdjustProductStock},
		{"DeleteProduct", http.MethodDelete, BasePath + "/products/:id", handleFunctions.ProductAPI.DeleteProduct},
	}
	if handleFunctions.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/metrics", gin.WrapH(handleFunctions.Metrics)})
	}
	return routes
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
