package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/services"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{Status: http.StatusOK, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{Status: http.StatusCreated, Message: message, Data: data})
}

func respondPage(c *gin.Context, data interface{}, meta models.PaginationMeta) {
	c.JSON(http.StatusOK, models.PaginatedResponse{Status: http.StatusOK, Data: data, Meta: meta})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Status: http.StatusBadRequest, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondError maps service errors onto the HTTP error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidOrderState):
		status = http.StatusConflict
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidResetCode),
		errors.Is(err, services.ErrUnknownOrderStatus):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	resp := models.ErrorResponse{Status: status, Message: err.Error()}
	if status == http.StatusInternalServerError {
		resp.Message = "Internal server error"
		resp.Error = err.Error()
	}

	c.JSON(status, resp)
}

func paginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	return page, limit
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}
