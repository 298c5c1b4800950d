package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/services"
)

// CollectionService is the service surface the handler translates onto HTTP.
type CollectionService interface {
	Add(ctx context.Context, userID uint, itemType string, itemID int64) (*models.CollectionItem, bool, error)
	Remove(ctx context.Context, userID uint, itemType string, itemID int64) error
	List(ctx context.Context, userID uint, typeFilter string, page, limit int) (*services.CollectionPage, error)
}

// CollectionHandler exposes the collection service over HTTP. It only
// parses parameters and maps service errors to status codes.
type CollectionHandler struct {
	collectionService CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// RegisterCollectionRoutes registers collection routes
func (h *CollectionHandler) RegisterCollectionRoutes(g *echo.Group) {
	g.GET("/collections", h.ListCollections)
	g.POST("/collections", h.AddToCollection)
	g.DELETE("/collections", h.RemoveFromCollection)
}

// ListCollections returns one page of the current user's collection,
// optionally filtered by type.
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := pageParams(c)
	typeFilter := c.QueryParam("type")

	result, err := h.collectionService.List(c.Request().Context(), currentUserID, typeFilter, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching collections.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       result.Items,
		"pagination": newPaginationMeta(result.Page, result.Limit, result.TotalItems),
	})
}

// AddToCollection bookmarks a post, food item or restaurant.
func (h *CollectionHandler) AddToCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddCollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Valid itemType (FOOD, RESTAURANT, POST) and itemId are required.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, alreadyExists, err := h.collectionService.Add(c.Request().Context(), currentUserID, req.ItemType, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrTargetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error adding to collection.")
		}
	}

	if alreadyExists {
		return c.JSON(http.StatusConflict, echo.Map{
			"message": "Item already in collection.",
			"item":    item,
		})
	}

	return c.JSON(http.StatusCreated, item)
}

// RemoveFromCollection removes a bookmark identified by query parameters.
func (h *CollectionHandler) RemoveFromCollection(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	itemType := c.QueryParam("itemType")
	itemID, err := strconv.ParseInt(c.QueryParam("itemId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid itemId format.")
	}

	err = h.collectionService.Remove(c.Request().Context(), currentUserID, itemType, itemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Item not found in collection.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error removing from collection.")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
