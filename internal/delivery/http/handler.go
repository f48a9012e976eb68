package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricefinder/backend/internal/domain"
	"github.com/pricefinder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService  *usecase.SearchService
	productService *usecase.ProductService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, productService *usecase.ProductService) *Handler {
	return &Handler{
		searchService:  searchService,
		productService: productService,
	}
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
	Page  int    `json:"page"`
}

type bothSearchRequest struct {
	Query        string `json:"query" binding:"required"`
	DigikalaPage int    `json:"digikalaPage"`
	TorobPage    int    `json:"torobPage"`
}

type loadMoreRequest struct {
	Query    string `json:"query" binding:"required"`
	Platform string `json:"platform" binding:"required"`
	Page     int    `json:"page"`
}

type productRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type productKeyRequest struct {
	ProductKey string `json:"productKey" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricefinder-backend",
		"version": "1.0.0",
	})
}

// SearchDigikala handles a Digikala-only search page request
func (h *Handler) SearchDigikala(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := h.searchService.SearchDigikala(c.Request.Context(), req.Query, req.Page)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgDigikalaSearchFailed)
		return
	}

	respondData(c, offers)
}

// SearchTorob handles a Torob-only search page request
func (h *Handler) SearchTorob(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := h.searchService.SearchTorob(c.Request.Context(), req.Query, req.Page)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgTorobSearchFailed)
		return
	}

	respondData(c, offers)
}

// SearchBoth handles the concurrent two-platform search. Partial platform
// failure stays inside the combined payload and is never an HTTP error.
func (h *Handler) SearchBoth(c *gin.Context) {
	var req bothSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	combined, err := h.searchService.SearchBoth(c.Request.Context(), req.Query, req.DigikalaPage, req.TorobPage)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgBothPlatformsFailed)
		return
	}

	respondData(c, combined)
}

// LoadMore handles incremental pagination for one platform
func (h *Handler) LoadMore(c *gin.Context) {
	var req loadMoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searchService.LoadMore(c.Request.Context(), req.Query, req.Platform, req.Page)
	if err != nil {
		fallback := domain.MsgDigikalaSearchFailed
		if req.Platform == domain.PlatformTorob {
			fallback = domain.MsgTorobSearchFailed
		}
		h.respondServiceError(c, err, fallback)
		return
	}

	respondData(c, result)
}

// GetDigikalaProduct handles a Digikala product detail request
func (h *Handler) GetDigikalaProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.productService.GetDigikalaProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgDigikalaDetailFailed)
		return
	}

	respondData(c, detail)
}

// GetDigikalaSellers handles the multi-seller comparison request
func (h *Handler) GetDigikalaSellers(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := h.productService.ResolveDigikalaSellers(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgDigikalaDetailFailed)
		return
	}

	respondData(c, offers)
}

// GetTorobProduct handles a Torob product detail request
func (h *Handler) GetTorobProduct(c *gin.Context) {
	var req productKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.productService.GetTorobProduct(c.Request.Context(), req.ProductKey)
	if err != nil {
		h.respondServiceError(c, err, domain.MsgTorobDetailFailed)
		return
	}

	respondData(c, detail)
}

// respondServiceError maps service errors onto the response contract with
// the endpoint's localized fallback message
func (h *Handler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(c, http.StatusNotFound, domain.MsgProductNotFound)
	default:
		respondError(c, http.StatusBadGateway, fallback)
	}
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
