package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler executes a request and returns the response payload with a status code.
type Handler func(r *http.Request) ([]byte, int, error)

// Route binds a handler to a path and method.
type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Server is a thin http front for the engine.
type Server struct {
	name   string
	port   int
	debug  bool
	block  Block
	mux    *http.ServeMux
	routes []Route
}

// NewServer creates a new server for the given port.
func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		block:  NewBlock(),
		mux:    http.NewServeMux(),
		routes: make([]Route, 0),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() {
	s.debug = true
}

// AddRoute adds a single route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

func (s *Server) handle(method Method, handler Handler) func(w http.ResponseWriter, r *http.Request) {
	name := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
	return func(w http.ResponseWriter, r *http.Request) {
		request := fmt.Sprintf("%s request : %s", method, name)
		s.block.Action <- NewEvent(request)
		defer func() {
			s.block.ReAction <- NewEvent(request)
		}()
		requestMethod := Method(r.Method)
		switch requestMethod {
		case method:
			b, code, err := handler(r)
			if err != nil {
				s.error(w, err)
			} else if code != http.StatusOK {
				s.code(w, b, code)
			} else {
				s.respond(w, b)
			}
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}
}

// Handler builds the http handler with all registered routes.
func (s *Server) Handler() http.Handler {
	go func() {
		for action := range s.block.Action {
			log.Debug().
				Time("time", action.Time).
				Str("action", action.Name).
				Msg("started execution")
			reaction := <-s.block.ReAction
			log.Debug().
				Time("time", action.Time).
				Float64("duration", time.Since(action.Time).Seconds()).
				Str("reaction", reaction.Name).
				Msg("completed execution")
		}
	}()

	for _, route := range s.routes {
		if route.Path != "" {
			s.mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route.Method, route.Exec))
		} else {
			s.mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route.Method, route.Exec))
		}
	}
	return s.mux
}

// Run starts the server
func (s *Server) Run() error {
	handler := s.Handler()
	log.Warn().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), handler); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("error for http request")
	s.code(w, []byte(err.Error()), http.StatusInternalServerError)
}

// Live is a liveness route.
func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the request body into the given value.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}
