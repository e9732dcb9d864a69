package web

import (
	"net/http"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OpenapiValidator rejects requests that do not match the published contract.
// A missing or broken document downgrades to a warning and lets traffic
// through; the contract is a guard rail, not a single point of failure.
func OpenapiValidator(log *zerolog.Logger, openApiContent []byte) gin.HandlerFunc {
	specRouter := loadSpecRouter(log, openApiContent)

	return func(c *gin.Context) {
		if specRouter == nil {
			return
		}

		route, pathParams, err := specRouter.FindRoute(c.Request)
		if err != nil {
			// Routes outside the document (status, pprof) pass through.
			return
		}

		validationInput := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				MultiError: false,
			},
		}

		if err := openapi3filter.ValidateRequest(c.Request.Context(), validationInput); err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Request does not match the api contract", err)
		}
	}
}

func loadSpecRouter(log *zerolog.Logger, openApiContent []byte) routers.Router {
	if len(openApiContent) == 0 {
		log.Warn().Msg("Openapi document is missing, request validation disabled")
		return nil
	}

	loader := openapi3.NewLoader()
	document, err := loader.LoadFromData(openApiContent)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load openapi document, request validation disabled")
		return nil
	}

	if err := document.Validate(loader.Context); err != nil {
		log.Warn().Err(err).Msg("Openapi document is invalid, request validation disabled")
		return nil
	}

	specRouter, err := gorillamux.NewRouter(document)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build openapi router, request validation disabled")
		return nil
	}

	return specRouter
}
