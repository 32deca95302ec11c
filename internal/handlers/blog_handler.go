package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"serverless-blog-api/internal/models"
	"serverless-blog-api/internal/services"
)

// BlogHandler handles blog-related HTTP requests
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// @Summary Liveness check
// @Description Answers OK while the server is running
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router / [get]
func (h *BlogHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, models.MessageOK)
}

// @Summary List records
// @Description Get every record in the table, in no particular order
// @Tags blog
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} models.Message
// @Router /blog [get]
func (h *BlogHandler) GetAll(c *gin.Context) {
	h.render(c, h.blogService.GetAll(c.Request.Context()))
}

// @Summary Create or replace a record
// @Description Store the record in the body, fully replacing any record with the same id
// @Tags blog
// @Accept json
// @Produce json
// @Param record body object true "Record with an id attribute"
// @Success 200 {object} models.Message
// @Failure 400 {object} models.Message
// @Failure 500 {object} models.Message
// @Router /blog [post]
func (h *BlogHandler) Post(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(fmt.Errorf("%s%w", models.PrefixInvalidBody, err)).SetType(gin.ErrorTypePublic)
		return
	}

	record, invalid := decodeBody(body)
	if invalid != nil {
		h.render(c, *invalid)
		return
	}

	h.render(c, h.blogService.Post(c.Request.Context(), record))
}

// @Summary Get a record
// @Description Get one record by id
// @Tags blog
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} models.Message
// @Failure 500 {object} models.Message
// @Router /blog/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	h.render(c, h.blogService.Get(c.Request.Context(), c.Param("id")))
}

// @Summary Delete a record
// @Description Delete one record by id. Deleting a missing id succeeds.
// @Tags blog
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} models.Message
// @Failure 500 {object} models.Message
// @Router /blog/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	h.render(c, h.blogService.Delete(c.Request.Context(), c.Param("id")))
}

func (h *BlogHandler) render(c *gin.Context, result models.Result) {
	c.JSON(result.StatusCode, result.Payload)
}
