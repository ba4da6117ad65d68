package processor

import (
	"context"

	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
)

// StartRenderConsumer feeds queued render tasks to p until ctx is cancelled.
func StartRenderConsumer(ctx context.Context, cfg config.KafkaConfig, workers int, p CreativeProcessor) error {
	return kafka.Consume(ctx, cfg.Brokers, cfg.Topic, cfg.GroupID, workers, func(ctx context.Context, task entity.RenderTask) error {
		return p.Process(ctx, task)
	})
}
