package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/llm"
)

// SubstituteHandler serves AI ingredient substitutions.
type SubstituteHandler struct {
	substituter *llm.Substituter
}

func NewSubstituteHandler(substituter *llm.Substituter) *SubstituteHandler {
	return &SubstituteHandler{substituter: substituter}
}

// RegisterRoutes registers the substitution route.
func (h *SubstituteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ai/substitute", h.Substitute)
}

// Substitute returns three substitutes for a missing ingredient. Provider
// problems never surface to the client; the deterministic table always
// answers.
func (h *SubstituteHandler) Substitute(c *gin.Context) {
	var req struct {
		Missing     string `json:"missing"`
		Ingredients []struct {
			Name string `json:"name"`
		} `json:"ingredients"`
		Diet string `json:"diet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	missing := strings.TrimSpace(req.Missing)
	if missing == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing ingredient is required"})
		return
	}

	names := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Name != "" {
			names = append(names, ing.Name)
		}
	}

	result := h.substituter.Suggest(c.Request.Context(), missing, names, req.Diet)
	c.JSON(http.StatusOK, result)
}
