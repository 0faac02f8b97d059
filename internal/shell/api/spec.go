package api

import (
	"net/http"

	"github.com/planforge/planforge/internal/shell/api/openapi"
	"github.com/planforge/planforge/internal/shell/store"
)

// newSpecGenerator registers every API endpoint with its wire models so the
// served OpenAPI document stays in lockstep with the handlers.
func newSpecGenerator() *openapi.Generator {
	g := openapi.NewGenerator()

	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodPost,
		Path:        "/api/v1/plans/forward",
		OperationID: "compileForwardPlan",
		Summary:     "Compile a forward rollout plan",
		Tag:         "Plans",
		Request:     CompilePlanRequest{},
		Response:    PlanResponse{},
		Status:      http.StatusCreated,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodPost,
		Path:        "/api/v1/plans/prestage",
		OperationID: "prepareCapacity",
		Summary:     "Compute the pre-provisioning capacity directive",
		Tag:         "Plans",
		Request:     CompilePlanRequest{},
		Response:    PrestageResponse{},
		Status:      http.StatusOK,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodPost,
		Path:        "/api/v1/plans/rollback",
		OperationID: "compileRollbackPlan",
		Summary:     "Compile a compensation plan for a failed rollout",
		Tag:         "Plans",
		Request:     RollbackPlanRequest{},
		Response:    PlanResponse{},
		Status:      http.StatusCreated,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodGet,
		Path:        "/api/v1/plans",
		OperationID: "listPlans",
		Summary:     "List archived plans",
		Tag:         "Archive",
		Response:    ListPlansResponse{},
		Status:      http.StatusOK,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodGet,
		Path:        "/api/v1/plans/{id}",
		OperationID: "getPlan",
		Summary:     "Get an archived plan",
		Tag:         "Archive",
		Response:    store.PlanRecord{},
		Status:      http.StatusOK,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodGet,
		Path:        "/health",
		OperationID: "health",
		Summary:     "Liveness check",
		Tag:         "Health",
		Response:    HealthResponse{},
		Status:      http.StatusOK,
	})
	g.RegisterEndpoint(openapi.Endpoint{
		Method:      http.MethodGet,
		Path:        "/ready",
		OperationID: "ready",
		Summary:     "Readiness check",
		Tag:         "Health",
		Response:    ReadyResponse{},
		Status:      http.StatusOK,
	})

	return g
}
