package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drakos74/free-draw/internal/engine"
	"github.com/drakos74/free-draw/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	e := engine.New("test", 10, storage.MockShard())
	s := NewServer("test", 0).Add(ScatterRoutes(e, false)...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, e
}

func post(t *testing.T, url string, request interface{}, response interface{}) int {
	var body bytes.Buffer
	if request != nil {
		assert.NoError(t, json.NewEncoder(&body).Encode(request))
	}
	resp, err := http.Post(url, "application/json", &body)
	assert.NoError(t, err)
	defer resp.Body.Close()
	if response != nil && resp.StatusCode == http.StatusOK {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(response))
	}
	return resp.StatusCode
}

func TestServer_Live(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/data", ts.URL))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestServer_AddSample(t *testing.T) {
	ts, _ := newTestServer(t)

	for i := 1; i <= 3; i++ {
		var response SampleResponse
		code := post(t, fmt.Sprintf("%s/api/sample", ts.URL), VectorRequest{
			Source: "pixels",
			Vector: []float64{float64(i), 0, 1},
		}, &response)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, i, response.Count)
		assert.Equal(t, 3, response.Dim)
	}
}

func TestServer_AddSampleRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	code := post(t, fmt.Sprintf("%s/api/sample", ts.URL), VectorRequest{
		Source: "pixels",
		Vector: []float64{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_FitAndProject(t *testing.T) {
	ts, _ := newTestServer(t)

	samples := [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{2, 0, 0, 0},
	}
	for _, s := range samples {
		code := post(t, fmt.Sprintf("%s/api/sample", ts.URL), VectorRequest{Vector: s}, nil)
		assert.Equal(t, http.StatusOK, code)
	}

	var result FitResponse
	code := post(t, fmt.Sprintf("%s/api/fit", ts.URL), nil, &result)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 3, len(result.Basis.Points))

	var projection ProjectResponse
	code = post(t, fmt.Sprintf("%s/api/project", ts.URL), VectorRequest{Vector: samples[0]}, &projection)
	assert.Equal(t, http.StatusOK, code)
	assert.NotNil(t, projection.Point)
	assert.InDelta(t, result.Basis.Points[0].X, projection.Point.X, 1e-6)
	assert.InDelta(t, result.Basis.Points[0].Y, projection.Point.Y, 1e-6)
}

func TestServer_ProjectWithoutBasis(t *testing.T) {
	ts, _ := newTestServer(t)

	var projection ProjectResponse
	code := post(t, fmt.Sprintf("%s/api/project", ts.URL), VectorRequest{Vector: []float64{1, 2}}, &projection)
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, projection.Point)
}

func TestServer_FitNotEnoughData(t *testing.T) {
	ts, _ := newTestServer(t)

	var result FitResponse
	code := post(t, fmt.Sprintf("%s/api/fit", ts.URL), nil, &result)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, result.Samples)
	assert.True(t, result.Basis.Empty())
}

func TestServer_Reset(t *testing.T) {
	ts, e := newTestServer(t)

	for i := 0; i < 4; i++ {
		post(t, fmt.Sprintf("%s/api/sample", ts.URL), VectorRequest{Vector: []float64{float64(i), 1}}, nil)
	}
	assert.Equal(t, 4, e.Size())

	code := post(t, fmt.Sprintf("%s/api/reset", ts.URL), nil, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, e.Size())
}

func TestServer_MethodNotImplemented(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/api/fit", ts.URL))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	resp.Body.Close()
}
