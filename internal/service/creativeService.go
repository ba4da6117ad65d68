package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Render builds the creative in the request path without storing it.
func (s *creativeService) Render(ctx context.Context, req CreativeRequest) (*processor.Output, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	out, err := s.processor.Render(ctx, processor.Input{
		CreativeID: id,
		Prompt:     req.Prompt,
		Width:      req.Width,
		Height:     req.Height,
		Base:       req.Base,
		Reference:  req.Reference,
		Params:     req.Params,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"creative_id": id,
		"width":       out.Width,
		"height":      out.Height,
		"warnings":    len(out.Warnings),
		"cached":      out.Cached,
	}).Info("Creative rendered")
	return out, nil
}

// Submit stores the request and queues it for the render worker.
func (s *creativeService) Submit(ctx context.Context, req CreativeRequest) (*entity.Creative, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	creative := &entity.Creative{
		ID:        uuid.New().String(),
		Status:    entity.StatusPending,
		Prompt:    req.Prompt,
		Width:     req.Width,
		Height:    req.Height,
		Params:    req.Params,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Сохраняем загруженные файлы
	assets := []struct {
		name string
		data []byte
	}{
		{entity.AssetBase, req.Base},
		{entity.AssetReference, req.Reference},
		{entity.AssetLogo, req.Params.Logo.Image},
		{entity.AssetLogoBackground, req.Params.LogoBackground.Image},
		{entity.AssetCouponBackground, req.Params.CouponBackground.Image},
	}
	for _, a := range assets {
		if len(a.data) == 0 {
			continue
		}
		if err := s.repo.SaveAsset(creative.ID, a.name, a.data); err != nil {
			return nil, fmt.Errorf("save asset %s: %w", a.name, err)
		}
		creative.Assets = append(creative.Assets, a.name)
	}

	if err := s.repo.Save(creative); err != nil {
		return nil, fmt.Errorf("save creative: %w", err)
	}

	// Отправляем в Kafka для обработки
	if err := s.producer.SendMessage(ctx, creative.ID, entity.RenderTask{CreativeID: creative.ID}); err != nil {
		creative.Status = entity.StatusFailed
		creative.Error = "render queue unavailable"
		creative.UpdatedAt = time.Now()
		if saveErr := s.repo.Save(creative); saveErr != nil {
			logrus.WithError(saveErr).WithField("creative_id", creative.ID).Error("Failed to mark creative as failed")
		}
		return nil, fmt.Errorf("enqueue render task: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"creative_id": creative.ID,
		"assets":      creative.Assets,
	}).Info("Creative queued")
	return creative, nil
}

func (s *creativeService) Get(id string) (*entity.Creative, error) {
	return s.repo.FindByID(id)
}

// Download returns the rendered PNG of a completed creative.
func (s *creativeService) Download(id string) (*entity.Creative, []byte, error) {
	creative, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if creative.Status != entity.StatusCompleted {
		return nil, nil, entity.ErrOutputNotReady
	}
	png, err := s.repo.LoadOutput(id)
	if err != nil {
		return nil, nil, err
	}
	return creative, png, nil
}

func (s *creativeService) Delete(id string) error {
	return s.repo.Delete(id)
}

func validate(req CreativeRequest) error {
	if len(req.Base) == 0 && strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: base image or prompt required", entity.ErrInvalidInput)
	}
	if len(req.Base) == 0 && (req.Width <= 0 || req.Height <= 0) {
		return fmt.Errorf("%w: %dx%d", entity.ErrInvalidDimension, req.Width, req.Height)
	}
	return nil
}
