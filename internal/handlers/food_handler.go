package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/repositories"
)

// FoodHandler handles food item and review HTTP requests
type FoodHandler struct {
	foodRepository   repositories.FoodRepository
	reviewRepository repositories.ReviewRepository
	flagger          CollectionFlagger
}

// NewFoodHandler creates a new FoodHandler
func NewFoodHandler(foodRepo repositories.FoodRepository, reviewRepo repositories.ReviewRepository, flagger CollectionFlagger) *FoodHandler {
	return &FoodHandler{
		foodRepository:   foodRepo,
		reviewRepository: reviewRepo,
		flagger:          flagger,
	}
}

// RegisterFoodRoutes registers food routes. Listing is public; posting a
// review requires authentication.
func (h *FoodHandler) RegisterFoodRoutes(public, protected *echo.Group) {
	public.GET("/food", h.GetFoodItems)
	public.GET("/food/:id", h.GetFoodItem)
	public.GET("/food/:id/reviews", h.GetReviews)
	protected.POST("/food/:id/reviews", h.CreateReview)
}

// EnrichedFoodItem is a food item with the current user's collection flag.
type EnrichedFoodItem struct {
	models.FoodItem
	IsCollected bool `json:"is_collected"`
}

// GetFoodItems returns a paginated list of food items sorted by name.
func (h *FoodHandler) GetFoodItems(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	items, err := h.foodRepository.GetFoodItems(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching food items.")
	}
	totalItems, err := h.foodRepository.CountFoodItems(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching food items.")
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	collectedMap := map[uint]bool{}
	if currentUserID > 0 {
		collectedMap, _ = h.flagger.CollectedIDs(c.Request().Context(), currentUserID, models.CollectionTypeFood, ids)
	}

	enriched := make([]EnrichedFoodItem, len(items))
	for i, item := range items {
		enriched[i] = EnrichedFoodItem{FoodItem: item, IsCollected: collectedMap[item.ID]}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       enriched,
		"pagination": newPaginationMeta(page, limit, totalItems),
	})
}

// GetFoodItem returns a single food item by id.
func (h *FoodHandler) GetFoodItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid food ID format.")
	}

	item, err := h.foodRepository.GetFoodItemByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Food item not found.")
	}

	return c.JSON(http.StatusOK, item)
}

// GetReviews returns a paginated list of reviews for one food item.
func (h *FoodHandler) GetReviews(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid food ID format.")
	}
	page, limit := pageParams(c)

	exists, err := h.foodRepository.FoodItemExists(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching reviews.")
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "Food item not found.")
	}

	reviews, err := h.reviewRepository.GetReviewsByFoodItem(c.Request().Context(), uint(id), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching reviews.")
	}
	totalItems, err := h.reviewRepository.CountReviewsByFoodItem(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching reviews.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       reviews,
		"pagination": newPaginationMeta(page, limit, totalItems),
	})
}

// CreateReview submits a review of a food item by the current user.
func (h *FoodHandler) CreateReview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid food ID format.")
	}

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exists, err := h.foodRepository.FoodItemExists(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error creating review.")
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "Food item not found.")
	}

	review := &models.Review{
		UserID:     currentUserID,
		FoodItemID: uint(id),
		Rating:     req.Rating,
		Content:    req.Content,
	}

	if err := h.reviewRepository.CreateReview(c.Request().Context(), review); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error creating review.")
	}

	return c.JSON(http.StatusCreated, review)
}
