package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danizd/licitamonitor/internal/service"
)

type Handler struct {
	intel *service.IntelService
	log   zerolog.Logger
}

func NewHandler(intel *service.IntelService, log zerolog.Logger) *Handler {
	return &Handler{intel: intel, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	api.GET("/tenders/active", h.activeTenders)
	api.GET("/tenders/deserted", h.rebidOpportunities)
	api.GET("/market/organisms", h.organismKPIs)
	api.GET("/competition/top", h.topCompetitors)
	api.GET("/competition/network", h.coParticipationGraph)
	api.GET("/adjudicatarios/search", h.searchBidders)
	api.GET("/adjudicatarios/:id/tenders", h.wonTenders)
	api.GET("/dashboard", h.dashboard)
	api.GET("/health", h.health)

	exports := api.Group("/")
	exports.Use(authMiddleware)
	exports.GET("/market/organisms/export", h.exportOrganisms)
	exports.GET("/tenders/deserted/export", h.exportRebid)

	router.GET("/health", h.health)
}

func (h *Handler) activeTenders(c *gin.Context) {
	tenders, err := h.intel.ActiveTenders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenders)
}

func (h *Handler) organismKPIs(c *gin.Context) {
	kpis, err := h.intel.OrganismKPIs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (h *Handler) topCompetitors(c *gin.Context) {
	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid n"})
			return
		}
		n = parsed
	}
	top, err := h.intel.TopCompetitors(c.Request.Context(), n)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

func (h *Handler) coParticipationGraph(c *gin.Context) {
	graph, err := h.intel.CoParticipationGraph(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (h *Handler) rebidOpportunities(c *gin.Context) {
	opps, err := h.intel.RebidOpportunities(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, opps)
}

func (h *Handler) searchBidders(c *gin.Context) {
	results, err := h.intel.SearchBidders(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) wonTenders(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bidder id"})
		return
	}
	tenders, err := h.intel.WonTenders(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenders)
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.intel.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) exportOrganisms(c *gin.Context) {
	name, content, err := h.intel.ExportOrganismsXLSX(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) exportRebid(c *gin.Context) {
	name, content, err := h.intel.ExportRebidPDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstream):
		h.log.Error().Err(err).Msg("fact store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fact store unavailable"})
	default:
		h.log.Error().Err(err).Msg("view request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
