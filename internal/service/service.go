package service

import (
	"context"

	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
)

// CreativeRequest carries one creative form submission. Base, when set,
// replaces the generated image.
type CreativeRequest struct {
	Prompt    string
	Width     int
	Height    int
	Base      []byte
	Reference []byte
	Params    entity.Params
}

type CreativeService interface {
	Render(ctx context.Context, req CreativeRequest) (*processor.Output, error)
	Submit(ctx context.Context, req CreativeRequest) (*entity.Creative, error)
	Get(id string) (*entity.Creative, error)
	Download(id string) (*entity.Creative, []byte, error)
	Delete(id string) error
}

type creativeService struct {
	repo      database.CreativeRepository
	producer  kafka.Producer
	processor processor.CreativeProcessor
}

func NewCreativeService(repo database.CreativeRepository, producer kafka.Producer, processor processor.CreativeProcessor) CreativeService {
	return &creativeService{
		repo:      repo,
		producer:  producer,
		processor: processor,
	}
}
