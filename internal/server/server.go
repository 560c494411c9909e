// Package server exposes the projection over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/mathutil"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "requestID"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.Use(requestIDMiddleware)

	// Projection from an uploaded YAML file
	api.HandleFunc("/projection", h.handleProjection).Methods(http.MethodPost)

	// Projection from editor-provided JSON
	api.HandleFunc("/editor/projection", h.handleProjectionEditor).Methods(http.MethodPost)

	// Config serialization for editor downloads
	api.HandleFunc("/editor/export", h.handleConfigExport).Methods(http.MethodPost)

	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	return router
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type projectionResponse struct {
	RequestID  string                 `json:"requestId"`
	Records    []forecast.MonthRecord `json:"records"`
	Years      []yearRow              `json:"years"`
	Summary    projectionSummary      `json:"summary"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config"`
	ConfigYAML string                 `json:"configYaml"`
}

type yearRow struct {
	Year                     int     `json:"year"`
	Principal                float64 `json:"principal"`
	Interest                 float64 `json:"interest"`
	InterestDeduction        float64 `json:"interestDeduction"`
	OwnershipLevy            float64 `json:"ownershipLevy"`
	NetInterest              float64 `json:"netInterest"`
	Outlay                   float64 `json:"outlay"`
	RemainingBalance         float64 `json:"remainingBalance"`
	AdvantageVsAlwaysRenting float64 `json:"advantageVsAlwaysRenting"`
}

type projectionSummary struct {
	Scheme                   string  `json:"scheme"`
	LoanAmount               float64 `json:"loanAmount"`
	GrossCost                float64 `json:"grossCost"`
	OneTimeNetCost           float64 `json:"oneTimeNetCost"`
	TotalInterest            float64 `json:"totalInterest"`
	TotalInterestDeduction   float64 `json:"totalInterestDeduction"`
	TotalOwnershipLevy       float64 `json:"totalOwnershipLevy"`
	TotalNetInterest         float64 `json:"totalNetInterest"`
	TotalTaxDisadvantage     float64 `json:"totalTaxDisadvantage"`
	FinalBalance             float64 `json:"finalBalance"`
	SavingsBalance           float64 `json:"savingsBalance"`
	AdvantageVsAlwaysRenting float64 `json:"advantageVsAlwaysRenting"`
	AdvantageVsRentingForNow float64 `json:"advantageVsRentingForNow"`
}

type errorResponse struct {
	Error     string   `json:"error"`
	RequestID string   `json:"requestId,omitempty"`
	Shortfall *float64 `json:"shortfall,omitempty"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Errorf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, errors.New("missing configuration file"), op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Errorf("failed to read configuration: %w", err), op)
		return
	}

	h.runProjection(w, r, buf.Bytes(), start, op)
}

func (h *handler) handleProjectionEditor(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectionEditor"
	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&payload); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to decode configuration: %w", err), op)
		return
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, r, http.StatusBadRequest, errors.New("invalid config payload: expected object"), op)
			return
		}
		configPayload = cfgMap
	}
	if configPayload == nil {
		configPayload = make(map[string]interface{})
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to encode configuration: %w", err), op)
		return
	}

	h.runProjection(w, r, configBytes, start, op)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	var payload map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&payload); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to decode configuration: %w", err), op)
		return
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("failed to encode configuration: %w", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// marshalOrderedConfigYAML writes the top-level sections in the order of the
// example configuration; unknown sections follow alphabetically.
func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "assumptions"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; !already {
			remainingKeys = append(remainingKeys, key)
		}
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runProjection(w http.ResponseWriter, r *http.Request, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err, op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	// Every projection failure stems from the submitted assumptions.
	projection, err := forecast.Project(h.logger, cfg.Assumptions)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err, op)
		return
	}

	var csvBuf bytes.Buffer
	if err := output.WriteCSV(&csvBuf, projection.Records); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, err, op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Errorf("error reading config data, %w", err), op)
		return
	}

	elapsed := time.Since(start)
	response := projectionResponse{
		RequestID:  requestID(r.Context()),
		Records:    projection.Records,
		Years:      buildYearRows(projection),
		Summary:    buildSummary(projection),
		CSV:        csvBuf.String(),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}
	if response.Warnings == nil {
		response.Warnings = []string{}
	}

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.String("requestId", response.RequestID),
		zap.Int("months", len(response.Records)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildYearRows(projection *forecast.Projection) []yearRow {
	summaries := forecast.YearSummaries(projection.Records)
	rows := make([]yearRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, yearRow{
			Year:                     projection.Assumptions.Purchase.Year + s.Year,
			Principal:                mathutil.Round(s.Principal),
			Interest:                 mathutil.Round(s.Interest),
			InterestDeduction:        mathutil.Round(s.InterestDeduction),
			OwnershipLevy:            mathutil.Round(s.OwnershipLevy),
			NetInterest:              mathutil.Round(s.NetInterest),
			Outlay:                   mathutil.Round(s.Outlay),
			RemainingBalance:         mathutil.Round(s.Final.RemainingBalance),
			AdvantageVsAlwaysRenting: mathutil.Round(s.Final.AdvantageVsAlwaysRenting),
		})
	}
	return rows
}

// buildSummary rounds every amount to cents. Records are sent unrounded.
func buildSummary(projection *forecast.Projection) projectionSummary {
	totals := forecast.Summarize(projection.Records)
	return projectionSummary{
		Scheme:                   projection.Terms.Scheme.String(),
		LoanAmount:               mathutil.Round(projection.Acquisition.LoanAmount),
		GrossCost:                mathutil.Round(projection.Acquisition.Gross),
		OneTimeNetCost:           mathutil.Round(projection.Acquisition.OneTimeNetCost),
		TotalInterest:            mathutil.Round(totals.Interest),
		TotalInterestDeduction:   mathutil.Round(totals.InterestDeduction),
		TotalOwnershipLevy:       mathutil.Round(totals.OwnershipLevy),
		TotalNetInterest:         mathutil.Round(totals.NetInterest),
		TotalTaxDisadvantage:     mathutil.Round(totals.TaxDisadvantage),
		FinalBalance:             mathutil.Round(totals.Final.RemainingBalance),
		SavingsBalance:           mathutil.Round(totals.Final.SavingsBalance),
		AdvantageVsAlwaysRenting: mathutil.Round(totals.Final.AdvantageVsAlwaysRenting),
		AdvantageVsRentingForNow: mathutil.Round(totals.Final.AdvantageVsRentingForNow),
	}
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, err error, op string) {
	id := requestID(r.Context())
	h.logger.Error("projection request failed",
		zap.String("op", op),
		zap.String("requestId", id),
		zap.Int("status", status),
		zap.Error(err),
	)

	payload := errorResponse{Error: err.Error(), RequestID: id}
	var shortfall *config.ShortfallError
	if errors.As(err, &shortfall) {
		missing := shortfall.Shortfall()
		payload.Shortfall = &missing
	}
	h.writeJSON(w, status, payload)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	// Encode before writing the header so a failure can still become a 500.
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
