package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/repositories"
)

// CollectionFlagger answers batch "is collected?" lookups for list
// enrichment. Satisfied by the collection service.
type CollectionFlagger interface {
	CollectedIDs(ctx context.Context, userID uint, itemType models.CollectionType, targetIDs []uint) (map[uint]bool, error)
}

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	flagger        CollectionFlagger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, flagger CollectionFlagger) *PostHandler {
	return &PostHandler{postRepository: postRepo, flagger: flagger}
}

// RegisterPostRoutes registers post routes. List and detail are public;
// create and delete require authentication.
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetPosts)
	public.GET("/posts/:id", h.GetPost)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
}

// EnrichedPost is a post with its author projection and the current user's
// collection flag.
type EnrichedPost struct {
	models.Post
	Author      models.UserCompact `json:"author"`
	IsCollected bool               `json:"is_collected"`
}

// GetPosts returns a paginated list of posts, newest first.
func (h *PostHandler) GetPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	posts, err := h.postRepository.GetPosts(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	totalItems, err := h.postRepository.CountPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	collectedMap := map[uint]bool{}
	if currentUserID > 0 {
		collectedMap, _ = h.flagger.CollectedIDs(c.Request().Context(), currentUserID, models.CollectionTypePost, postIDs)
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p, IsCollected: collectedMap[p.ID]}
		if p.Author != nil {
			enriched[i].Author = p.Author.ToCompact()
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       enriched,
		"pagination": newPaginationMeta(page, limit, totalItems),
	})
}

// GetPost returns a single post by id.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID format.")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
	}

	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a post authored by the current user.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:  currentUserID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post owned by the current user.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID format.")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Cannot delete another user's post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
