package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chartSvc   chart.Service
	profileSvc profile.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, profileSvc profile.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc:   chartSvc,
		profileSvc: profileSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

type batchRequest struct {
	Requests []chart.Request `json:"requests"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ComputeChart returns the sidereal chart for one birth moment.
func (h *Handler) ComputeChart(c *gin.Context) {
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Compute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ComputeBatch returns charts for several birth moments in request order.
func (h *Handler) ComputeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	results, err := h.chartSvc.ComputeBatch(c.Request.Context(), req.Requests)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CreateProfile saves a named birth profile.
func (h *Handler) CreateProfile(c *gin.Context) {
	var req profile.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	p, err := h.profileSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListProfiles returns saved profiles, newest first.
func (h *Handler) ListProfiles(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	profiles, err := h.profileSvc.List(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GetProfile returns one saved profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.profileSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// ExportProfile writes the profile's chart document to object storage.
func (h *Handler) ExportProfile(c *gin.Context) {
	obj, err := h.profileSvc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, obj)
}

// DownloadExport streams a previously exported chart document.
func (h *Handler) DownloadExport(c *gin.Context) {
	body, err := h.profileSvc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, "export_failed", "failed to read chart export", err))
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
