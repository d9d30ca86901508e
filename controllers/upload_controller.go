package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/utils"
)

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// UploadImages godoc
// @Summary Upload images
// @Description Stores one or more images under the upload directory and returns their paths
// @Tags Upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Image files"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/upload/img [post]
func (ctrl *UploadController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "Invalid multipart form", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondBadRequest(c, "No files provided", nil)
		return
	}

	var paths []string
	var failures []string
	for _, fileHeader := range files {
		path, err := utils.UploadFile(c, fileHeader, "images")
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", fileHeader.Filename, err))
			continue
		}
		paths = append(paths, path)
	}

	if len(failures) > 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "Some files could not be uploaded",
			Error:   fmt.Sprintf("%v", failures),
		})
		return
	}

	respondCreated(c, "Files uploaded successfully", gin.H{"paths": paths})
}
