package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/models"
	"github.com/yourusername/diamond-odds/internal/odds"
	"github.com/yourusername/diamond-odds/internal/service"
)

// Simulator is the service surface the handlers depend on
type Simulator interface {
	Run(ctx context.Context, req service.SimulationRequest) (*models.SimulationResult, error)
	History(ctx context.Context, gameID string, limit int) ([]service.HistoryEntry, error)
	AnalyzeFactors(ctx context.Context, gameID string) (*service.FactorAnalysis, error)
}

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SimulationBody is the body of a simulation request
type SimulationBody struct {
	Count   *int              `json:"count"`
	Seed    int64             `json:"seed"`
	Factors *models.FactorSet `json:"factors"`
}

// HistoryResponse lists stored runs for a game
type HistoryResponse struct {
	GameID      string                 `json:"game_id"`
	Simulations []service.HistoryEntry `json:"simulations"`
}

// OddsConversion shows one price in all three formats
type OddsConversion struct {
	American    int     `json:"american"`
	Decimal     float64 `json:"decimal"`
	Probability float64 `json:"probability"`
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	simulator Simulator
	logger    *logrus.Entry
}

// NewHandler creates a new handler with dependencies
func NewHandler(simulator Simulator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Handler{
		simulator: simulator,
		logger:    logger.WithField("component", "api"),
	}
}

// RunSimulation runs a Monte Carlo simulation for a game
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var body SimulationBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.respondError(w, fmt.Errorf("%w: malformed request body: %v", models.ErrInvalidArgument, err))
			return
		}
	}

	req := service.SimulationRequest{GameID: gameID, Seed: body.Seed, Factors: body.Factors}
	if body.Count != nil {
		if *body.Count <= 0 {
			h.respondError(w, fmt.Errorf("%w: count must be positive", models.ErrInvalidArgument))
			return
		}
		req.Count = *body.Count
	}

	result, err := h.simulator.Run(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetHistory returns recent simulations for a game
// Query params: limit
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, fmt.Errorf("%w: limit must be an integer", models.ErrInvalidArgument))
			return
		}
		limit = v
	}

	entries, err := h.simulator.History(r.Context(), gameID, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{GameID: gameID, Simulations: entries})
}

// AnalyzeFactors returns the factors that could impact a game
func (h *Handler) AnalyzeFactors(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.simulator.AnalyzeFactors(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// ConvertOdds converts a price given as exactly one of american, decimal or probability
func (h *Handler) ConvertOdds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var provided []string
	for _, key := range []string{"american", "decimal", "probability"} {
		if q.Get(key) != "" {
			provided = append(provided, key)
		}
	}
	if len(provided) != 1 {
		h.respondError(w, fmt.Errorf("%w: provide exactly one of american, decimal or probability", models.ErrInvalidArgument))
		return
	}

	conversion, err := convert(provided[0], q.Get(provided[0]))
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, conversion)
}

func convert(kind, raw string) (*OddsConversion, error) {
	switch kind {
	case "american":
		american, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: american odds must be an integer", models.ErrInvalidArgument)
		}
		return fromAmerican(american)
	case "decimal":
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: decimal odds must be a number", models.ErrInvalidArgument)
		}
		american, err := odds.DecimalToAmerican(d)
		if err != nil {
			return nil, err
		}
		p, err := odds.DecimalToImplied(d)
		if err != nil {
			return nil, err
		}
		return &OddsConversion{American: american, Decimal: d, Probability: p}, nil
	default:
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: probability must be a number", models.ErrInvalidArgument)
		}
		american, err := odds.ProbabilityToAmericanOdds(p)
		if err != nil {
			return nil, err
		}
		conversion, err := fromAmerican(american)
		if err != nil {
			return nil, err
		}
		conversion.Probability = p
		return conversion, nil
	}
}

func fromAmerican(american int) (*OddsConversion, error) {
	dec, err := odds.DecimalOdds(american)
	if err != nil {
		return nil, err
	}
	p, err := odds.AmericanToImplied(american)
	if err != nil {
		return nil, err
	}
	d, _ := dec.Float64()
	return &OddsConversion{American: american, Decimal: d, Probability: p}, nil
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	kind := models.ErrorKind(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("Request failed")
	}

	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Kind:    kind,
		Message: err.Error(),
		Code:    status,
	})
}

func statusForKind(kind string) int {
	switch kind {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
