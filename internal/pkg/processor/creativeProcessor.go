package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"strings"
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/cache"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/compositor"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/generator"
	"github.com/sirupsen/logrus"
)

// Input is everything one render needs. An empty Base asks the generator
// for a base image built from Prompt.
type Input struct {
	CreativeID string
	Prompt     string
	Width      int
	Height     int
	Base       []byte
	Reference  []byte
	Params     entity.Params
}

type Output struct {
	PNG      []byte
	Width    int
	Height   int
	Layers   []compositor.Layer
	Warnings []compositor.Warning
	Cached   bool
}

type CreativeProcessor interface {
	Render(ctx context.Context, in Input) (*Output, error)
	Process(ctx context.Context, task entity.RenderTask) error
}

type creativeProcessor struct {
	repo      database.CreativeRepository
	generator generator.Client
	renderer  *compositor.Renderer
	cache     cache.RenderCache
}

// NewCreativeProcessor builds the render pipeline. renderCache may be nil.
func NewCreativeProcessor(repo database.CreativeRepository, gen generator.Client, renderer *compositor.Renderer, renderCache cache.RenderCache) CreativeProcessor {
	return &creativeProcessor{
		repo:      repo,
		generator: gen,
		renderer:  renderer,
		cache:     renderCache,
	}
}

func (p *creativeProcessor) Render(ctx context.Context, in Input) (*Output, error) {
	log := logrus.WithField("creative_id", in.CreativeID)

	base := in.Base
	if len(base) == 0 {
		if strings.TrimSpace(in.Prompt) == "" {
			return nil, fmt.Errorf("%w: base image or prompt required", entity.ErrInvalidInput)
		}
		generated, err := p.generator.Generate(ctx, generator.Request{
			Prompt:    in.Prompt,
			Width:     in.Width,
			Height:    in.Height,
			Reference: in.Reference,
		})
		if err != nil {
			return nil, fmt.Errorf("generate base image: %w", err)
		}
		base = generated
	}

	// the resolved font is part of the cache key
	params := in.Params
	params.FontPath = p.renderer.FontPath(params)

	key := p.lookupKey(log, base, params)
	if out := p.fromCache(ctx, log, key); out != nil {
		return out, nil
	}

	res, err := p.renderer.Render(base, params)
	if err != nil {
		return nil, fmt.Errorf("render creative: %w", err)
	}

	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{
			"layer": w.Layer,
			"error": w.Err,
		}).Warn("Overlay skipped")
	}

	// partial renders are not cached so a hit never hides warnings
	if key != "" && len(res.Warnings) == 0 {
		if err := p.cache.Set(ctx, key, res.PNG); err != nil {
			log.WithError(err).Warn("Failed to store render in cache")
		}
	}

	return &Output{
		PNG:      res.PNG,
		Width:    res.Width,
		Height:   res.Height,
		Layers:   res.Layers,
		Warnings: res.Warnings,
	}, nil
}

// Process runs one queued render and records the outcome on the creative.
func (p *creativeProcessor) Process(ctx context.Context, task entity.RenderTask) error {
	creative, err := p.repo.FindByID(task.CreativeID)
	if err != nil {
		return fmt.Errorf("load creative: %w", err)
	}

	creative.Status = entity.StatusProcessing
	creative.UpdatedAt = time.Now()
	if err := p.repo.Save(creative); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	in, err := p.loadInput(creative)
	if err != nil {
		return p.fail(creative, err)
	}

	out, err := p.Render(ctx, in)
	if err != nil {
		return p.fail(creative, err)
	}

	if err := p.repo.SaveOutput(creative.ID, out.PNG); err != nil {
		return p.fail(creative, fmt.Errorf("save output: %w", err))
	}

	creative.Status = entity.StatusCompleted
	creative.Width = out.Width
	creative.Height = out.Height
	creative.Warnings = warningStrings(out.Warnings)
	creative.Error = ""
	creative.UpdatedAt = time.Now()
	if err := p.repo.Save(creative); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (p *creativeProcessor) loadInput(creative *entity.Creative) (Input, error) {
	in := Input{
		CreativeID: creative.ID,
		Prompt:     creative.Prompt,
		Width:      creative.Width,
		Height:     creative.Height,
		Params:     creative.Params,
	}

	assets := map[string]*[]byte{
		entity.AssetBase:             &in.Base,
		entity.AssetReference:        &in.Reference,
		entity.AssetLogo:             &in.Params.Logo.Image,
		entity.AssetLogoBackground:   &in.Params.LogoBackground.Image,
		entity.AssetCouponBackground: &in.Params.CouponBackground.Image,
	}
	for _, name := range creative.Assets {
		dst, ok := assets[name]
		if !ok {
			continue
		}
		data, err := p.repo.LoadAsset(creative.ID, name)
		if err != nil {
			return Input{}, fmt.Errorf("load asset %s: %w", name, err)
		}
		*dst = data
	}
	return in, nil
}

func (p *creativeProcessor) fail(creative *entity.Creative, cause error) error {
	creative.Status = entity.StatusFailed
	creative.Error = cause.Error()
	creative.UpdatedAt = time.Now()
	if err := p.repo.Save(creative); err != nil {
		logrus.WithError(err).WithField("creative_id", creative.ID).Error("Failed to mark creative as failed")
	}
	return cause
}

func (p *creativeProcessor) lookupKey(log *logrus.Entry, base []byte, params entity.Params) string {
	if p.cache == nil {
		return ""
	}
	key, err := cache.Key(base, params)
	if err != nil {
		log.WithError(err).Warn("Failed to build cache key")
		return ""
	}
	return key
}

func (p *creativeProcessor) fromCache(ctx context.Context, log *logrus.Entry, key string) *Output {
	if key == "" {
		return nil
	}
	png, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Render cache unavailable")
		return nil
	}
	if !ok {
		return nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		log.WithError(err).Warn("Discarding unreadable cache entry")
		return nil
	}
	log.Debug("Render served from cache")
	return &Output{PNG: png, Width: cfg.Width, Height: cfg.Height, Cached: true}
}

func warningStrings(warnings []compositor.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}
