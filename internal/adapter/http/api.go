package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/locale"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// Catalog provides the curated regions and lakes.
type Catalog interface {
	Regions() []domain.Region
	Region(id string) (domain.Region, error)
	LevelCounts() map[domain.RiskLevel]int
	Lakes() []domain.Lake
	Lake(id string) (domain.Lake, error)
}

// Strings provides flattened locale tables.
type Strings interface {
	Table(locale string) map[string]string
}

// ReportSubmitter accepts report requests for asynchronous generation.
type ReportSubmitter interface {
	Submit(req domain.ReportRequest) (domain.ReportRequest, error)
}

// SeriesDefaults bound the history and trend endpoints.
type SeriesDefaults struct {
	Start   time.Time
	Days    int
	MaxDays int
}

// Dependencies are the collaborators the API serves from.
type Dependencies struct {
	Catalog Catalog
	Strings Strings
	Reports ReportSubmitter
	Random  domain.SourceFunc
	Series  SeriesDefaults
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// API serves the dashboard's JSON endpoints.
type API struct {
	catalog Catalog
	strings Strings
	reports ReportSubmitter
	random  domain.SourceFunc
	series  SeriesDefaults
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewAPI creates the API handler set.
func NewAPI(d Dependencies) *API {
	random := d.Random
	if random == nil {
		random = domain.SharedSource(domain.DefaultSource)
	}
	return &API{
		catalog: d.Catalog,
		strings: d.Strings,
		reports: d.Reports,
		random:  random,
		series:  d.Series,
		metrics: d.Metrics,
		logger:  d.Logger,
	}
}

// RegisterRoutes mounts the API on r, typically a /api/v1 subrouter.
func (a *API) RegisterRoutes(r *mux.Router) {
	r.Use(a.instrument)

	r.HandleFunc("/regions", a.listRegions).Methods(http.MethodGet)
	r.HandleFunc("/regions/{id}", a.getRegion).Methods(http.MethodGet)
	r.HandleFunc("/regions/{id}/history", a.regionHistory).Methods(http.MethodGet)
	r.HandleFunc("/regions/{id}/trends", a.regionTrends).Methods(http.MethodGet)
	r.HandleFunc("/risk", a.deriveRisk).Methods(http.MethodPost)
	r.HandleFunc("/lakes", a.listLakes).Methods(http.MethodGet)
	r.HandleFunc("/lakes/{id}", a.getLake).Methods(http.MethodGet)
	r.HandleFunc("/locales/{locale}", a.getLocale).Methods(http.MethodGet)
	r.HandleFunc("/reports", a.submitReport).Methods(http.MethodPost)
}

type regionSummary struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	NameUr      string                `json:"nameUr"`
	Coordinates domain.Coordinates    `json:"coordinates"`
	CurrentRisk domain.RiskAssessment `json:"currentRisk"`
	Color       string                `json:"color"`
}

type regionDetail struct {
	domain.Region
	Color               string  `json:"color"`
	ExplainabilityTotal float64 `json:"explainabilityTotal"`
}

func (a *API) listRegions(w http.ResponseWriter, _ *http.Request) {
	regions := a.catalog.Regions()
	out := make([]regionSummary, len(regions))
	for i, r := range regions {
		out[i] = regionSummary{
			ID:          r.ID,
			Name:        r.Name,
			NameUr:      r.NameUr,
			Coordinates: r.Coordinates,
			CurrentRisk: r.CurrentRisk,
			Color:       r.CurrentRisk.Level.Color(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"regions":     out,
		"levelCounts": a.catalog.LevelCounts(),
	})
}

func (a *API) getRegion(w http.ResponseWriter, r *http.Request) {
	region, err := a.catalog.Region(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, regionDetail{
		Region:              region,
		Color:               region.CurrentRisk.Level.Color(),
		ExplainabilityTotal: region.Explainability.Total(),
	})
}

type seriesResponse struct {
	RegionID string                       `json:"regionId"`
	Start    string                       `json:"start"`
	Days     int                          `json:"days"`
	Points   []domain.HistoricalDataPoint `json:"points,omitempty"`
	Trends   []domain.TrendSummary        `json:"trends,omitempty"`
}

// generate produces a fresh series for the region named in the path using the
// start and days query parameters.
func (a *API) generate(r *http.Request) (seriesResponse, []domain.HistoricalDataPoint, error) {
	region, err := a.catalog.Region(mux.Vars(r)["id"])
	if err != nil {
		return seriesResponse{}, nil, err
	}

	q := r.URL.Query()
	start := a.series.Start
	if s := q.Get("start"); s != "" {
		if start, err = domain.ParseDate(s); err != nil {
			return seriesResponse{}, nil, err
		}
	}
	days := a.series.Days
	if s := q.Get("days"); s != "" {
		if days, err = strconv.Atoi(s); err != nil {
			return seriesResponse{}, nil, fmt.Errorf("days %q is not an integer: %w", s, domain.ErrInvalidArgument)
		}
	}
	if a.series.MaxDays > 0 && days > a.series.MaxDays {
		return seriesResponse{}, nil, fmt.Errorf("days %d exceeds limit %d: %w", days, a.series.MaxDays, domain.ErrInvalidArgument)
	}

	key := fmt.Sprintf("series/%s/%s/%d", region.ID, start.Format(domain.DateLayout), days)
	points, err := domain.GenerateSeries(start, days, a.random(key))
	if err != nil {
		return seriesResponse{}, nil, err
	}
	a.metrics.SeriesGenerated.Inc()
	a.metrics.PointsGenerated.Add(float64(len(points)))

	return seriesResponse{
		RegionID: region.ID,
		Start:    start.Format(domain.DateLayout),
		Days:     days,
	}, points, nil
}

func (a *API) regionHistory(w http.ResponseWriter, r *http.Request) {
	resp, points, err := a.generate(r)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	resp.Points = points
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) regionTrends(w http.ResponseWriter, r *http.Request) {
	var indicator domain.Indicator
	if s := r.URL.Query().Get("indicator"); s != "" {
		var err error
		if indicator, err = domain.ParseIndicator(s); err != nil {
			writeError(w, r, a.logger, err)
			return
		}
	}

	resp, points, err := a.generate(r)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	if indicator == "" {
		resp.Trends, err = domain.SummarizeAll(points)
	} else {
		var s domain.TrendSummary
		s, err = domain.SummarizeTrend(points, indicator)
		resp.Trends = []domain.TrendSummary{s}
	}
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type riskResponse struct {
	Score     int              `json:"score"`
	BaseScore float64          `json:"baseScore"`
	Level     domain.RiskLevel `json:"level"`
	Color     string           `json:"color"`
}

func (a *API) deriveRisk(w http.ResponseWriter, r *http.Request) {
	var signals domain.Signals
	if err := decodeJSON(w, r, &signals); err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	key := fmt.Sprintf("risk/%g/%g/%g/%g", signals.Rainfall, signals.Temperature, signals.SnowCover, signals.LakeArea)
	score := domain.DeriveRisk(signals, a.random(key))
	a.metrics.RiskDerivations.Inc()

	level := domain.LevelForScore(score)
	writeJSON(w, http.StatusOK, riskResponse{
		Score:     score,
		BaseScore: domain.BaseRiskScore(signals),
		Level:     level,
		Color:     level.Color(),
	})
}

type lakeSummary struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	NameUr      string             `json:"nameUr"`
	Coordinates domain.Coordinates `json:"coordinates"`
	CurrentArea float64            `json:"currentArea"`
}

type lakeDetail struct {
	domain.Lake
	Change *domain.LakeChange `json:"change,omitempty"`
}

func (a *API) listLakes(w http.ResponseWriter, _ *http.Request) {
	lakes := a.catalog.Lakes()
	out := make([]lakeSummary, len(lakes))
	for i, l := range lakes {
		out[i] = lakeSummary{
			ID:          l.ID,
			Name:        l.Name,
			NameUr:      l.NameUr,
			Coordinates: l.Coordinates,
		}
		if n := len(l.Observations); n > 0 {
			out[i].CurrentArea = l.Observations[n-1].Area
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lakes": out})
}

func (a *API) getLake(w http.ResponseWriter, r *http.Request) {
	lake, err := a.catalog.Lake(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	detail := lakeDetail{Lake: lake}
	if change, err := lake.AreaChange(domain.LakeChangeLookback); err == nil {
		detail.Change = &change
	}
	writeJSON(w, http.StatusOK, detail)
}

func (a *API) getLocale(w http.ResponseWriter, r *http.Request) {
	requested := mux.Vars(r)["locale"]
	resolved := locale.Normalize(requested)
	writeJSON(w, http.StatusOK, map[string]any{
		"locale":  resolved,
		"strings": a.strings.Table(resolved),
	})
}

type reportRequest struct {
	Type     string `json:"type"`
	RegionID string `json:"regionId"`
	Locale   string `json:"locale"`
}

type reportAccepted struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
}

func (a *API) submitReport(w http.ResponseWriter, r *http.Request) {
	var body reportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	reportType, err := domain.ParseReportType(body.Type)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	if body.RegionID != "" {
		if _, err := a.catalog.Region(body.RegionID); err != nil {
			writeError(w, r, a.logger, err)
			return
		}
	}

	req, err := a.reports.Submit(domain.ReportRequest{
		Type:     reportType,
		RegionID: body.RegionID,
		Locale:   locale.Normalize(body.Locale),
	})
	if err != nil {
		a.logger.WarnContext(r.Context(), "report request rejected", "error", err, "type", reportType)
		writeError(w, r, a.logger, err)
		return
	}

	a.logger.InfoContext(r.Context(), "report queued", "report_id", req.ID, "type", req.Type, "region_id", req.RegionID)
	writeJSON(w, http.StatusAccepted, reportAccepted{
		ID:          req.ID,
		Status:      "queued",
		RequestedAt: req.RequestedAt,
	})
}
