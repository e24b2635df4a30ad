package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/internal/dish"
	"github.com/menuhub/dish-service/internal/dish/service"
	"github.com/menuhub/dish-service/pkg/logger"
	"github.com/menuhub/dish-service/pkg/metrics"
)

// maxBodyBytes bounds POST /api/dishes payloads.
const maxBodyBytes = 1 << 20

type dishHandler struct {
	svc *service.Service
}

// RegisterDishRoutes mounts the menu API on r.
func RegisterDishRoutes(r gin.IRouter, svc *service.Service) {
	h := &dishHandler{svc: svc}
	r.GET("/api/dishes", h.list)
	r.GET("/api/dishes/:id", h.get)
	r.POST("/api/dishes", h.create)
}

func (h *dishHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorw("list dishes failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dishes"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *dishHandler) get(c *gin.Context) {
	raw := c.Param("id")
	kind := dish.ParseIdentifier(raw).Kind.String()
	d, err := h.svc.Get(c.Request.Context(), raw)
	switch {
	case err == nil:
		metrics.DishLookups.WithLabelValues(kind, "found").Inc()
		c.JSON(http.StatusOK, d)
	case errors.Is(err, service.ErrMalformedIdentifier):
		metrics.DishLookups.WithLabelValues(kind, "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
	case errors.Is(err, service.ErrNotFound):
		metrics.DishLookups.WithLabelValues(kind, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"message": "Dish not found"})
	default:
		metrics.DishLookups.WithLabelValues(kind, "error").Inc()
		logger.Errorw("get dish failed", "id", raw, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dish"})
	}
}

// create accepts a single dish object or an array of them.
func (h *dishHandler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if body[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(body, &raws); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
			return
		}
		cs := decodeCandidates(raws)
		created, err := h.svc.CreateMany(c.Request.Context(), cs)
		if err != nil {
			h.writeCreateError(c, err, "No valid dishes found")
			return
		}
		metrics.DishesCreated.WithLabelValues("bulk").Add(float64(len(created)))
		metrics.BulkCandidatesDropped.Add(float64(len(raws) - len(created)))
		c.JSON(http.StatusCreated, created)
		return
	}

	var cand dish.Candidate
	if err := json.Unmarshal(body, &cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}
	d, err := h.svc.Create(c.Request.Context(), cand)
	if err != nil {
		h.writeCreateError(c, err, "Name and Price are required")
		return
	}
	metrics.DishesCreated.WithLabelValues("single").Inc()
	c.JSON(http.StatusCreated, d)
}

// decodeCandidates decodes each batch entry on its own; an entry of the wrong shape is
// dropped like one missing a field.
func decodeCandidates(raws []json.RawMessage) []dish.Candidate {
	cs := make([]dish.Candidate, 0, len(raws))
	for _, raw := range raws {
		var cand dish.Candidate
		if err := json.Unmarshal(raw, &cand); err != nil {
			continue
		}
		cs = append(cs, cand)
	}
	return cs
}

func (h *dishHandler) writeCreateError(c *gin.Context, err error, validationMsg string) {
	if errors.Is(err, dish.ErrInvalidPrice) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a positive number"})
		return
	}
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMsg})
		return
	}
	logger.Errorw("save dish failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save dish"})
}
