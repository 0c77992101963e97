/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// go-pixie API
//
// # Read-only access to the trace capture history
//
// Schemes: http
// Host: localhost:8003
// Version: 1.0.0
//
//	Produces:
//	- application/json
//
// swagger:meta
package srv

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/log"
	"xia.com/pixienet/go-pixie/pkg/state"
)

const (
	ApiPrefix       = "/api"
	ShutdownTimeout = 5 * time.Second
)

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
}

func NewApiServer(ctx context.Context, cfg *config.Config) *ApiServer {
	log.Info("Initializing API server with address: %s", cfg.ApiAddress)
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
	}
	s.configureRouter()
	return s
}

// Handler wraps the router with request logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	return handlers.RecoveryHandler()(handlers.LoggingHandler(log.Writer(), s.Router))
}

// Run serves until the context is done
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s", s.ApiAddress)
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.ApiAddress,
	}
	go func() {
		<-s.Context.Done()
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		httpServer.Shutdown(ctx)
	}()
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix(ApiPrefix).Subrouter()
	// swagger:operation GET /captures captures listCaptures
	// ---
	// summary: list recorded captures, oldest first
	subRouter.HandleFunc("/captures", s.handleCaptures()).Methods("GET")
	// swagger:operation GET /captures/{id} captures getCapture
	// ---
	// summary: get one recorded capture
	subRouter.HandleFunc("/captures/{id:[0-9]+}", s.handleCapture()).Methods("GET")
}

// openState opens the capture database for the duration of one request so
// that captures can record while the server is running
func (s *ApiServer) openState() (*state.CaptureState, error) {
	if s.DBPath == "" {
		return nil, ErrNoCaptureStore{}
	}
	return state.OpenCaptureState(s.DBPath)
}

func (s *ApiServer) handleCaptures() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling captures request")
		st, err := s.openState()
		if errors.Is(err, fs.ErrNotExist) {
			writeJSON(w, []*state.CaptureRecord{})
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer st.Close()

		recs, err := st.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, recs)
	}
}

func (s *ApiServer) handleCapture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling capture request: id: %s", vars["id"])

		id, err := strconv.ParseUint(vars["id"], 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		st, err := s.openState()
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, state.ErrCaptureNotFound{ID: id}.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer st.Close()

		rec, err := st.Get(id)
		var notFound state.ErrCaptureNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rec)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}
