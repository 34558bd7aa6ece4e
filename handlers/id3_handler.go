// Package handlers exposes id3tool over HTTP.
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ktkr.us/pkg/id3tool"
	"ktkr.us/pkg/id3tool/format"
	"ktkr.us/pkg/id3tool/id3/id3v2"
)

const maxMemory = 32 << 20

// Response is the body of every /id3 reply.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Kind    string         `json:"kind,omitempty"`
	Header  *format.Fields `json:"header,omitempty"`
}

type ID3Handler struct {
	defaultFormat string
}

func NewID3Handler() *ID3Handler {
	return &ID3Handler{defaultFormat: "text"}
}

// Register mounts the handler's routes on r.
func (h *ID3Handler) Register(r gin.IRouter) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/id3", h.ReadHeader)
	}
}

func (h *ID3Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"formats": format.Names(),
	})
}

// ReadHeader decodes the ID3v2 header at the start of the upload. The
// upload is either a multipart "file" field or the raw request body.
// A stream without a valid tag is still a 200: the failure is the message.
func (h *ID3Handler) ReadHeader(c *gin.Context) {
	f, err := format.Lookup(c.DefaultQuery("format", h.defaultFormat))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	body, err := h.upload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to read upload: %v", err),
		})
		return
	}
	defer body.Close()

	tool, err := id3tool.New(body, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	header, err := tool.Result()
	if err != nil {
		log.Printf("id3: %s: %v", c.ClientIP(), err)
		c.JSON(http.StatusOK, Response{
			Success: false,
			Message: err.Error(),
			Kind:    kindOf(err),
		})
		return
	}

	fields := format.NewFields(header)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: f.Format(header),
		Header:  &fields,
	})
}

func (h *ID3Handler) upload(c *gin.Context) (io.ReadCloser, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return c.Request.Body, nil
	}
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		return nil, err
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}

func kindOf(err error) string {
	if k := id3v2.KindOf(err); k != id3v2.Unknown {
		return k.String()
	}
	return ""
}
