package entity

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Creative is the stored metadata of one render request.
type Creative struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Prompt    string    `json:"prompt,omitempty"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Params    Params    `json:"params"`
	Assets    []string  `json:"assets,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Asset names under which uploaded files are stored next to a creative.
const (
	AssetBase             = "base"
	AssetReference        = "reference"
	AssetLogo             = "logo"
	AssetLogoBackground   = "logo_background"
	AssetCouponBackground = "coupon_background"
)

type RenderTask struct {
	CreativeID string `json:"creative_id"`
}

type CreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CreativeResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Warnings    []string `json:"warnings,omitempty"`
	Error       string   `json:"error,omitempty"`
	DownloadURL string   `json:"download_url,omitempty"`
}
