package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

var (
	errMalformedJSON = errors.New("body is not valid JSON")
	errNotContainer  = errors.New("body must be a JSON object or array")
)

// UserHandlers provides HTTP handlers for user operations
type UserHandlers struct {
	userService UserService
	logger      *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userService UserService, logger *zap.Logger) *UserHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandlers{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandlers) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandlers) ListUsers(c *gin.Context) {
	list, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := decodeBody(c, &req); err != nil {
		h.fail(c, bodyError("", err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) UpdateUser(c *gin.Context) {
	rawID := c.Param("id")

	var req UpdateUserRequest
	if err := decodeBody(c, &req); err != nil {
		h.fail(c, bodyError(rawID, err))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), rawID, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandlers) fail(c *gin.Context, err error) {
	switch {
	case IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case IsInvalidRequest(err):
		h.logger.Debug("Rejected request body",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
	case IsRequestTooLarge(err):
		h.logger.Debug("Rejected oversized request body",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "request entity too large"})
	default:
		h.logger.Error("User operation failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

// decodeBody reads the request body into dst the way a strict JSON body parser
// does. Bodies not labelled application/json are not read and leave dst empty,
// as does an empty body. Otherwise the body must be a valid JSON object or
// array; an array carries no fields, so it also leaves dst empty.
func decodeBody(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.ContentType() != binding.MIMEJSON {
		return nil
	}

	raw, err := c.GetRawData()
	if err != nil {
		return err
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil
	}
	if !json.Valid(body) {
		return errMalformedJSON
	}

	switch body[0] {
	case '{':
		return binding.JSON.BindBody(body, dst)
	case '[':
		return nil
	default:
		return errNotContainer
	}
}

func bodyError(userID string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewRequestTooLargeError(userID, err)
	}
	return NewInvalidRequestError(userID, err)
}
