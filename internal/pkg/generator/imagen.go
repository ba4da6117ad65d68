package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/sirupsen/logrus"
)

type Request struct {
	Prompt    string
	Width     int
	Height    int
	Reference []byte
}

// Client produces base images from a text prompt.
type Client interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

type imagenClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient returns an Imagen predict client, or a client that always fails
// with ErrGeneratorUnavailable when no api key is configured.
func NewClient(cfg config.GeneratorConfig) Client {
	if cfg.APIKey == "" {
		logrus.Warn("generator api key not provided, prompt based creatives are disabled")
		return unavailableClient{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &imagenClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   fmt.Sprintf("%s/models/%s:predict", strings.TrimRight(cfg.BaseURL, "/"), cfg.Model),
		apiKey:     cfg.APIKey,
	}
}

type predictRequest struct {
	Instances  instance   `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type instance struct {
	Prompt string       `json:"prompt"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Image  *inlineImage `json:"image,omitempty"`
}

type inlineImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type parameters struct {
	SampleCount int `json:"sampleCount"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

func (c *imagenClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	payload := predictRequest{
		Instances:  instance{Prompt: req.Prompt, Width: req.Width, Height: req.Height},
		Parameters: parameters{SampleCount: 1},
	}
	if len(req.Reference) > 0 {
		payload.Instances.Image = &inlineImage{
			BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.Reference),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// the key never goes into the url
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrGeneratorUpstream, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
		"width":    req.Width,
		"height":   req.Height,
	}).Info("Generator responded")

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: status %d: %s", statusError(resp.StatusCode), resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}
	if len(result.Predictions) == 0 || result.Predictions[0].BytesBase64Encoded == "" {
		return nil, entity.ErrNoPrediction
	}

	image, err := base64.StdEncoding.DecodeString(result.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}
	return image, nil
}

func statusError(status int) error {
	switch status {
	case http.StatusBadRequest:
		return entity.ErrGeneratorRejected
	case http.StatusUnauthorized, http.StatusForbidden:
		return entity.ErrGeneratorForbidden
	case http.StatusTooManyRequests:
		return entity.ErrGeneratorRateLimited
	default:
		return entity.ErrGeneratorUpstream
	}
}

type unavailableClient struct{}

func (unavailableClient) Generate(context.Context, Request) ([]byte, error) {
	return nil, entity.ErrGeneratorUnavailable
}
