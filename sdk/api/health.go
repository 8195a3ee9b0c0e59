package api

import (
	"context"
	"net/http"

	"github.com/gamerecs/gamerecs/internal/restmachinery"
	"github.com/pkg/errors"
)

const (
	// StatusUp indicates a healthy service.
	StatusUp = "UP"
	// StatusDown indicates an unhealthy or unreachable service.
	StatusDown = "DOWN"
)

// Health is the combined health of the GameRecs services.
type Health struct {
	// Status is StatusUp only when every checked component is up.
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth is the health of one service.
type ComponentHealth struct {
	Status  string                 `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
	// Error describes why the component could not be checked, if it couldn't.
	Error string `json:"error,omitempty"`
}

// HealthClient is the specialized client for checking service health.
type HealthClient interface {
	// Check returns the combined health of the API and, if configured, the
	// web frontend. A component that cannot be reached is reported as down
	// rather than as an error.
	Check(context.Context) (Health, error)
}

type healthClient struct {
	*restmachinery.BaseClient
	frontendAddress string
}

func (h *healthClient) Check(ctx context.Context) (Health, error) {
	health := Health{
		Status:     StatusUp,
		Components: map[string]ComponentHealth{},
	}
	targets := map[string]*restmachinery.BaseClient{"backend": h.BaseClient}
	paths := map[string]string{"backend": "actuator/health"}
	if h.frontendAddress != "" {
		targets["frontend"] = &restmachinery.BaseClient{
			APIAddress: h.frontendAddress,
			HTTPClient: h.HTTPClient,
		}
		paths["frontend"] = "health"
	}
	for name, target := range targets {
		component, err := check(ctx, target, paths[name])
		if err != nil {
			return health, err
		}
		if component.Status != StatusUp {
			health.Status = StatusDown
		}
		health.Components[name] = component
	}
	return health, nil
}

func check(
	ctx context.Context,
	target *restmachinery.BaseClient,
	path string,
) (ComponentHealth, error) {
	resp := struct {
		Status     string                 `json:"status"`
		Components map[string]interface{} `json:"components"`
	}{}
	if err := target.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        path,
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	); err != nil {
		if ctx.Err() != nil {
			return ComponentHealth{}, errors.Wrap(err, "error checking health")
		}
		return ComponentHealth{
			Status: StatusDown,
			Error:  err.Error(),
		}, nil
	}
	status := resp.Status
	if status != StatusUp {
		status = StatusDown
	}
	return ComponentHealth{
		Status:  status,
		Details: resp.Components,
	}, nil
}
