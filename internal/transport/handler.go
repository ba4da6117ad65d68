package transport

import (
	"github.com/ds124wfegd/WB_L3/6/internal/service"
)

type CreativeHandler struct {
	service        service.CreativeService
	maxUploadBytes int64
	baseURL        string
}

func NewCreativeHandler(service service.CreativeService, maxUploadMB int64, baseURL string) *CreativeHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &CreativeHandler{
		service:        service,
		maxUploadBytes: maxUploadMB << 20,
		baseURL:        baseURL,
	}
}
