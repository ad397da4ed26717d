package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amterp/stacks/internal/controller"
	stackserr "github.com/amterp/stacks/internal/errors"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/svgview"
	"go.uber.org/zap"
)

// NumberResponse is the current controller state.
type NumberResponse struct {
	Number int           `json:"number"`
	Min    int           `json:"min"`
	Max    int           `json:"max,omitempty"`
	Layout *model.Layout `json:"layout"`
}

// SetNumberRequest is the body of PUT /api/v1/number. Value may be a JSON
// string or a JSON number; strings go through the same coercion as typed input.
type SetNumberRequest struct {
	Value json.RawMessage `json:"value"`
}

// Handler handles HTTP requests for the API.
type Handler struct {
	controller *controller.Controller
	logger     *zap.Logger
}

// NewHandler creates a new API handler around ctrl.
func NewHandler(ctrl *controller.Controller, logger *zap.Logger) *Handler {
	return &Handler{controller: ctrl, logger: logger}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/number", h.GetNumber)
	mux.HandleFunc("PUT /api/v1/number", h.SetNumber)

	mux.HandleFunc("GET /api/v1/layouts/{n}", h.GetLayout)
	mux.HandleFunc("GET /api/v1/layouts/{n}/svg", h.GetLayoutSVG)

	mux.HandleFunc("GET /api/v1/palette", h.GetPalette)

	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Static files (frontend) - must be last
	mux.Handle("/", h.StaticHandler())
}

// GetNumber returns the current number and its layout.
func (h *Handler) GetNumber(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.numberResponse())
}

// SetNumber replaces the current number. Invalid input leaves state untouched.
func (h *Handler) SetNumber(w http.ResponseWriter, r *http.Request) {
	var req SetNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid JSON")
		return
	}

	raw, err := rawValue(req.Value)
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.controller.SetRaw(raw); err != nil {
		h.logger.Debug("Rejected number", zap.String("value", raw), zap.Error(err))
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, h.numberResponse())
}

// GetLayout renders any valid number without touching the current value.
func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	lay, err := h.layoutFor(r.PathValue("n"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, lay)
}

// GetLayoutSVG renders any valid number as an SVG document.
func (h *Handler) GetLayoutSVG(w http.ResponseWriter, r *http.Request) {
	lay, err := h.layoutFor(r.PathValue("n"))
	if err != nil {
		Error(w, err)
		return
	}

	var buf bytes.Buffer
	svgview.Write(&buf, lay)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// GetPalette returns the colour legend and cell-size bands.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.Renderer().Policy().Palette())
}

func (h *Handler) numberResponse() NumberResponse {
	limits := h.controller.Limits()
	n, lay := h.controller.State()
	return NumberResponse{
		Number: n,
		Min:    max(limits.Min, model.HardMinNumber),
		Max:    limits.Max,
		Layout: lay,
	}
}

func (h *Handler) layoutFor(raw string) (*model.Layout, error) {
	n, err := controller.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := h.controller.Validate(n); err != nil {
		return nil, err
	}
	return h.controller.Renderer().Render(n), nil
}

// rawValue accepts `"17"`, `17` and `17.0` alike.
func rawValue(msg json.RawMessage) (string, error) {
	if len(msg) == 0 || string(msg) == "null" {
		return "", stackserr.NotANumber("")
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, nil
	}

	var num json.Number
	if err := json.Unmarshal(msg, &num); err != nil {
		return "", stackserr.NotANumber(string(msg))
	}
	return num.String(), nil
}
