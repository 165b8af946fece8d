package catalogserver

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	apierrors "github.com/Apurer/franchise-catalog-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", catalogProblem)

// catalogProblem maps the catalog error taxonomy onto problem details.
// The classified message is the caller-facing detail.
func catalogProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, detail string) {
	responder.BadRequest(c, detail)
}

// bindJSON decodes the request body and answers 400 on malformed payloads.
// An empty body decodes as an empty object.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "malformed JSON body")
		return false
	}
	return true
}

// parseIDParam binds a positive int64 path parameter and answers 400 otherwise.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil || id <= 0 {
		respondBadRequest(c, "path parameter "+name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
