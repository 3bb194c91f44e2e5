package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sgdraw/pkg/cache"
	"github.com/matzehuels/sgdraw/pkg/graphio"
	"github.com/matzehuels/sgdraw/pkg/observability"
	"github.com/matzehuels/sgdraw/pkg/pipeline"
	"github.com/matzehuels/sgdraw/pkg/render"
	"github.com/matzehuels/sgdraw/pkg/store"
)

// createLayoutRequest is the POST /api/v1/layouts body: a node-link graph
// document plus pipeline options. Omitted options take the pipeline
// defaults.
type createLayoutRequest struct {
	Graph   json.RawMessage  `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the wire form of a layout job record.
type layoutResponse struct {
	ID        string             `json:"id"`
	Status    store.Status       `json:"status"`
	Error     string             `json:"error,omitempty"`
	Layout    *graphio.LayoutDoc `json:"layout,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type listResponse struct {
	Layouts []layoutResponse `json:"layouts"`
}

func toResponse(rec *store.Layout) layoutResponse {
	return layoutResponse{
		ID:        rec.ID,
		Status:    rec.Status,
		Error:     rec.Error,
		Layout:    rec.Doc,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req createLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_json_body", "request body is not valid JSON")
		return
	}
	if len(req.Graph) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing_graph", "request is missing the graph document")
		return
	}

	// Jobs read the submitted graph only, never server files.
	opts := req.Options
	opts.InputPath = ""
	opts.Reader = bytes.NewReader(req.Graph)
	opts.Format = pipeline.FormatJSON
	if err := opts.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_options", err.Error())
		return
	}

	rec := store.NewLayout(uuid.NewString())
	rec.Graph = req.Graph
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.logger.Error("persist layout job", "id", rec.ID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "store_error", "could not persist the layout job")
		return
	}

	go s.runJob(rec.ID, req.Graph, opts)

	s.logger.Info("layout job accepted", "id", rec.ID, "strategy", opts.Strategy, "geometry", opts.Geometry)
	s.writeJSON(w, http.StatusAccepted, toResponse(rec))
}

// runJob executes one layout computation in the background and records
// the outcome. It runs detached from the request context so a closed
// connection does not abort the job.
func (s *Server) runJob(id string, graphData []byte, opts pipeline.Options) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Error("load layout job", "id", id, "err", err)
		return
	}
	rec.MarkRunning()
	if err := s.store.Put(ctx, rec); err != nil {
		s.logger.Error("mark layout job running", "id", id, "err", err)
		return
	}

	opts.Reader = bytes.NewReader(graphData)
	res, err := s.runner.Run(ctx, opts)
	if err != nil {
		s.logger.Error("layout job failed", "id", id, "err", err)
		rec.MarkFailed(err)
	} else {
		doc := res.Layout
		doc.ID = id
		rec.MarkDone(&doc)
		s.logger.Info("layout job done", "id", id, "stress", res.Stats.Stress, "duration", res.Stats.LayoutTime)
	}

	if err := s.store.Put(ctx, rec); err != nil {
		s.logger.Error("persist layout job result", "id", id, "err", err)
	}
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("list layout jobs", "err", err)
		s.writeError(w, http.StatusInternalServerError, "store_error", "could not list layout jobs")
		return
	}

	resp := listResponse{Layouts: make([]layoutResponse, 0, len(records))}
	for _, rec := range records {
		resp.Layouts = append(resp.Layouts, toResponse(rec))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "layout_not_found", "no layout job with id "+id)
			return
		}
		s.logger.Error("load layout job", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "store_error", "could not load the layout job")
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "layout_not_found", "no layout job with id "+id)
			return
		}
		s.logger.Error("delete layout job", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "store_error", "could not delete the layout job")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "layout_not_found", "no layout job with id "+id)
			return
		}
		s.logger.Error("load layout job", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "store_error", "could not load the layout job")
		return
	}
	if rec.Status != store.StatusDone || rec.Doc == nil {
		s.writeError(w, http.StatusConflict, "layout_not_ready", "layout job is "+string(rec.Status))
		return
	}

	svg, err := s.renderArtifact(r.Context(), rec)
	if err != nil {
		s.logger.Error("render layout", "id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, "render_failed", "could not render the layout")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(svg); err != nil {
		s.logger.Error("write svg response", "id", id, "err", err)
	}
}

// renderArtifact produces the SVG for a finished job, cached under the
// layout's content hash so repeated fetches skip the renderer.
func (s *Server) renderArtifact(ctx context.Context, rec *store.Layout) ([]byte, error) {
	layoutBytes, err := graphio.MarshalLayout(*rec.Doc)
	if err != nil {
		return nil, err
	}
	key := s.keyer.ArtifactKey(cache.Hash(layoutBytes), cache.ArtifactKeyOpts{
		Format: "svg",
		Width:  render.DefaultWidth,
		Height: render.DefaultHeight,
	})

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, nil
	} else if err != nil {
		s.logger.Warn("artifact cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	g, err := graphio.ReadJSON(bytes.NewReader(rec.Graph))
	if err != nil {
		return nil, err
	}
	svg, err := render.SVG(g, *rec.Doc, render.WithLabels())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, svg, cache.TTLArtifact); err != nil {
		s.logger.Warn("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(svg))
	}
	return svg, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorPayload{Error: errorBody{Code: code, Message: message}})
}
