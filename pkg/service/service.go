// Package service exposes the engine over HTTP: table listing, schema
// inspection, query execution and EXPLAIN.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"colq/pkg/engine"
	"colq/pkg/engine/types"
)

// Server routes requests against a catalog of registered tables. One
// execution context is shared; it carries no per-query state.
type Server struct {
	catalog *engine.Catalog
	ctx     *engine.ExecutionContext
}

func NewServer(catalog *engine.Catalog) *Server {
	return &Server{catalog: catalog, ctx: engine.NewContext()}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tables", s.handleListTables).Methods(http.MethodGet)
	r.HandleFunc("/tables/{table}/schema", s.handleSchema).Methods(http.MethodGet)
	r.HandleFunc("/tables/{table}/query", s.handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/tables/{table}/explain", s.handleExplain).Methods(http.MethodPost)
	return r
}

type fieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// QueryResult is the row-oriented wire form of a collected result.
type QueryResult struct {
	Columns []fieldInfo `json:"columns"`
	Rows    [][]any     `json:"rows"`
	NumRows int         `json:"num_rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Names())
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["table"]
	source, ok := s.catalog.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no table named %q", name)})
		return
	}
	schema := source.Schema()
	fields := make([]fieldInfo, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = fieldInfo{Name: f.Name, Type: f.Type.String()}
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.buildFrame(w, r)
	if !ok {
		return
	}
	batches, err := frame.Collect()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	schema, err := frame.Schema()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	result, err := buildResult(schema, batches)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.buildFrame(w, r)
	if !ok {
		return
	}
	verbose := r.URL.Query().Get("verbose") == "true"
	text, err := frame.Explain(verbose)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text)
}

// buildFrame decodes the request body and assembles the frame. On
// failure it has already written the response.
func (s *Server) buildFrame(w http.ResponseWriter, r *http.Request) (*engine.Frame, bool) {
	name := mux.Vars(r)["table"]
	source, ok := s.catalog.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no table named %q", name)})
		return nil, false
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return nil, false
	}

	frame, err := s.ctx.FromSource(name, source)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	if req.Where != nil {
		predicate, err := mapExpr(*req.Where)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return nil, false
		}
		frame = frame.Filter(predicate)
	}
	if len(req.Select) > 0 {
		mapped, err := mapExprs(req.Select)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return nil, false
		}
		frame = frame.Select(mapped...)
	}
	return frame, true
}

func buildResult(schema types.TableSchema, batches []*types.DataBatch) (*QueryResult, error) {
	columns := make([]fieldInfo, len(schema.Fields))
	for i, f := range schema.Fields {
		columns[i] = fieldInfo{Name: f.Name, Type: f.Type.String()}
	}
	rows := make([][]any, 0)
	for _, batch := range batches {
		for i := 0; i < batch.RowCount(); i++ {
			row := make([]any, batch.ColumnCount())
			for j := 0; j < batch.ColumnCount(); j++ {
				v, err := batch.Column(j).ValueAt(i)
				if err != nil {
					return nil, err
				}
				row[j] = v
			}
			rows = append(rows, row)
		}
	}
	return &QueryResult{Columns: columns, Rows: rows, NumRows: len(rows)}, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// writeEngineError maps engine error kinds onto HTTP statuses. Plan and
// type errors are the caller's fault; everything else is internal.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrSchema),
		errors.Is(err, types.ErrColumnNotFound),
		errors.Is(err, types.ErrType),
		errors.Is(err, types.ErrCast),
		errors.Is(err, types.ErrSizeMismatch),
		errors.Is(err, types.ErrArityMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrUnsupportedOperation):
		status = http.StatusNotImplemented
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
