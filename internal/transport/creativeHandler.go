package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/6/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

// RenderCreative renders the creative in the request and returns the PNG.
func (h *CreativeHandler) RenderCreative(c *gin.Context) {
	req, err := h.bindCreativeRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.service.Render(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Set(middleware.RenderWarningsKey, len(out.Warnings))
	if warnings := renderWarnings(out); warnings != "" {
		c.Header("X-Render-Warnings", warnings)
	}
	cacheStatus := "miss"
	if out.Cached {
		cacheStatus = "hit"
	}
	c.Header(middleware.RenderCacheHeader, cacheStatus)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=creative_%dx%d.png", out.Width, out.Height))
	c.Data(http.StatusOK, "image/png", out.PNG)
}

// SubmitCreative stores the request and queues the render.
func (h *CreativeHandler) SubmitCreative(c *gin.Context) {
	req, err := h.bindCreativeRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	creative, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, entity.CreateResponse{
		ID:     creative.ID,
		Status: creative.Status,
	})
}

func (h *CreativeHandler) GetCreative(c *gin.Context) {
	id := c.Param("id")

	creative, err := h.service.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response := entity.CreativeResponse{
		ID:       creative.ID,
		Status:   creative.Status,
		Width:    creative.Width,
		Height:   creative.Height,
		Warnings: creative.Warnings,
		Error:    creative.Error,
	}

	if creative.Status == entity.StatusCompleted {
		response.DownloadURL = fmt.Sprintf("%s/api/creatives/%s/download", strings.TrimRight(h.baseURL, "/"), creative.ID)
	}

	c.JSON(http.StatusOK, response)
}

func (h *CreativeHandler) DownloadCreative(c *gin.Context) {
	id := c.Param("id")

	creative, png, err := h.service.Download(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=creative_%dx%d_%s.png", creative.Width, creative.Height, creative.ID))
	c.Data(http.StatusOK, "image/png", png)
}

func (h *CreativeHandler) DeleteCreative(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creative deleted successfully"})
}

func renderWarnings(out *processor.Output) string {
	parts := make([]string, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, "; ")
}

// writeError maps err to a status. 5xx bodies carry only a public message;
// the full error goes to the request log.
func writeError(c *gin.Context, err error) {
	status, public := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": public})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{entity.ErrCreativeNotFound, http.StatusNotFound},
	{entity.ErrOutputNotReady, http.StatusConflict},
	{entity.ErrInvalidInput, http.StatusBadRequest},
	{entity.ErrInvalidDimension, http.StatusBadRequest},
	{entity.ErrGeneratorRejected, http.StatusBadRequest},
	{entity.ErrGeneratorRateLimited, http.StatusTooManyRequests},
	{entity.ErrGeneratorUnavailable, http.StatusServiceUnavailable},
	{entity.ErrGeneratorForbidden, http.StatusBadGateway},
	{entity.ErrGeneratorUpstream, http.StatusBadGateway},
	{entity.ErrNoPrediction, http.StatusBadGateway},
}

func errorStatus(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, err.Error()
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	var decodeErr *entity.ImageDecodeError
	if errors.As(err, &decodeErr) {
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
