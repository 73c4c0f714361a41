package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/service"
)

// ShoppingHandler serves shopping list management. All routes require auth.
type ShoppingHandler struct {
	shopping *service.ShoppingService
}

func NewShoppingHandler(shopping *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping}
}

// RegisterRoutes registers the shopping routes on an authenticated group.
func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/shopping", h.List)
	router.POST("/shopping", h.Create)
	router.PATCH("/shopping", h.SetChecked)
	router.DELETE("/shopping", h.Delete)
}

// List returns the caller's shopping lists with items.
func (h *ShoppingHandler) List(c *gin.Context) {
	userID, _ := currentUserID(c)
	lists, err := h.shopping.Lists(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shopping lists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// Create makes a new list with optional initial items.
func (h *ShoppingHandler) Create(c *gin.Context) {
	var req struct {
		Name  string            `json:"name"`
		Items []service.NewItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "list name is required"})
		return
	}

	userID, _ := currentUserID(c)
	list, err := h.shopping.Create(userID, req.Name, req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, list)
}

// SetChecked marks an item checked or unchecked.
func (h *ShoppingHandler) SetChecked(c *gin.Context) {
	var req struct {
		ItemID  string `json:"itemId"`
		Checked bool   `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itemId"})
		return
	}

	userID, _ := currentUserID(c)
	item, err := h.shopping.SetChecked(userID, itemID, req.Checked)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes a list (?listId=) or a single item (?itemId=).
func (h *ShoppingHandler) Delete(c *gin.Context) {
	userID, _ := currentUserID(c)

	if listID := c.Query("listId"); listID != "" {
		id, err := uuid.Parse(listID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listId"})
			return
		}
		if err := h.shopping.DeleteList(userID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete list"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}

	if itemID := c.Query("itemId"); itemID != "" {
		id, err := uuid.Parse(itemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid itemId"})
			return
		}
		if err := h.shopping.DeleteItem(userID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "listId or itemId is required"})
}
