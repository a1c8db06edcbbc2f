package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/drakos74/free-draw/internal/engine"
)

// ScatterRoutes exposes the sample window and the decomposition of the
// given engine over http.
func ScatterRoutes(e *engine.Engine, debug bool) []Route {
	return []Route{
		Live(),
		{
			Action: Api,
			Path:   "sample",
			Method: POST,
			Exec:   addSample(e, debug),
		},
		{
			Action: Api,
			Path:   "fit",
			Method: POST,
			Exec:   fit(e),
		},
		{
			Action: Api,
			Path:   "project",
			Method: POST,
			Exec:   project(e, debug),
		},
		{
			Action: Api,
			Path:   "reset",
			Method: POST,
			Exec:   reset(e),
		},
	}
}

func addSample(e *engine.Engine, debug bool) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		var request VectorRequest
		if err := JsonRead(r, debug, &request); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("could not parse sample: %w", err)
		}
		source := request.Source
		if source == "" {
			source = "unknown"
		}
		count, err := e.Add(source, request.Vector)
		if err != nil {
			b, _ := json.Marshal(SampleResponse{Count: count, Dim: e.Dim()})
			return b, http.StatusBadRequest, nil
		}
		return respond(SampleResponse{Count: count, Dim: e.Dim()})
	}
}

func fit(e *engine.Engine) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		result, err := e.Compute()
		if errors.Is(err, engine.ErrBusy) {
			return []byte(err.Error()), http.StatusConflict, nil
		}
		if err != nil {
			return nil, 0, err
		}
		return respond(result)
	}
}

func project(e *engine.Engine, debug bool) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		var request VectorRequest
		if err := JsonRead(r, debug, &request); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("could not parse vector: %w", err)
		}
		// malformed input and a missing basis degrade to a null point
		response := ProjectResponse{}
		if p, ok := e.Project(request.Vector); ok {
			response.Point = &p
		}
		return respond(response)
	}
}

func reset(e *engine.Engine) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		e.Reset()
		return respond(SampleResponse{Count: 0, Dim: 0})
	}
}

func respond(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, 0, fmt.Errorf("could not marshal response: %w", err)
	}
	return b, http.StatusOK, nil
}
