package server

import (
	"time"

	"github.com/drakos74/free-draw/internal/engine"
	"github.com/drakos74/free-draw/internal/math/pca"
)

// Event tracks the start or finish of a request execution.
type Event struct {
	Name string
	Time time.Time
}

// NewEvent creates a new event for the given request name.
func NewEvent(name string) Event {
	return Event{
		Name: name,
		Time: time.Now(),
	}
}

// Block carries the start and finish events of request executions.
type Block struct {
	Action   chan Event
	ReAction chan Event
}

// NewBlock creates a new block.
func NewBlock() Block {
	return Block{
		Action:   make(chan Event),
		ReAction: make(chan Event),
	}
}

// VectorRequest is the payload carrying one feature vector.
type VectorRequest struct {
	Source string    `json:"source"`
	Vector []float64 `json:"vector"`
}

// SampleResponse reports the window state after adding a sample.
type SampleResponse struct {
	Count int `json:"count"`
	Dim   int `json:"dim"`
}

// ProjectResponse carries the 2d position of a single vector,
// or a null point when no basis is available or the input is malformed.
type ProjectResponse struct {
	Point *pca.Point `json:"point"`
}

// FitResponse is the outcome of a decomposition run.
type FitResponse = engine.Result
