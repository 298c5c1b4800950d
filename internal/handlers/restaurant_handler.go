package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/repositories"
)

// RestaurantHandler handles restaurant HTTP requests
type RestaurantHandler struct {
	restaurantRepository repositories.RestaurantRepository
	flagger              CollectionFlagger
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(restaurantRepo repositories.RestaurantRepository, flagger CollectionFlagger) *RestaurantHandler {
	return &RestaurantHandler{restaurantRepository: restaurantRepo, flagger: flagger}
}

// RegisterRestaurantRoutes registers restaurant routes
func (h *RestaurantHandler) RegisterRestaurantRoutes(public *echo.Group) {
	public.GET("/restaurants", h.GetRestaurants)
	public.GET("/restaurants/:id", h.GetRestaurant)
}

// EnrichedRestaurant is a restaurant with the current user's collection flag.
type EnrichedRestaurant struct {
	models.Restaurant
	IsCollected bool `json:"is_collected"`
}

// GetRestaurants returns a paginated list of restaurants sorted by name.
func (h *RestaurantHandler) GetRestaurants(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	restaurants, err := h.restaurantRepository.GetRestaurants(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching restaurants.")
	}
	totalItems, err := h.restaurantRepository.CountRestaurants(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error fetching restaurants.")
	}

	ids := make([]uint, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	collectedMap := map[uint]bool{}
	if currentUserID > 0 {
		collectedMap, _ = h.flagger.CollectedIDs(c.Request().Context(), currentUserID, models.CollectionTypeRestaurant, ids)
	}

	enriched := make([]EnrichedRestaurant, len(restaurants))
	for i, r := range restaurants {
		enriched[i] = EnrichedRestaurant{Restaurant: r, IsCollected: collectedMap[r.ID]}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       enriched,
		"pagination": newPaginationMeta(page, limit, totalItems),
	})
}

// GetRestaurant returns a single restaurant by id.
func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid restaurant ID format.")
	}

	restaurant, err := h.restaurantRepository.GetRestaurantByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Restaurant not found.")
	}

	return c.JSON(http.StatusOK, restaurant)
}
