package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// TaskHandler handles one render task.
type TaskHandler func(ctx context.Context, task entity.RenderTask) error

// Consume reads render tasks until ctx is cancelled, running at most workers
// handlers at once.
func Consume(ctx context.Context, brokers []string, topic, groupID string, workers int, handle TaskHandler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	if workers <= 0 {
		workers = 1
	}
	slots := make(chan struct{}, workers)

	logrus.WithFields(logrus.Fields{
		"brokers": brokers,
		"topic":   topic,
		"group":   groupID,
		"workers": workers,
	}).Info("Render consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			logrus.WithError(err).Error("Error reading message from Kafka")
			continue
		}

		entry := logrus.WithFields(logrus.Fields{
			"partition": msg.Partition,
			"offset":    msg.Offset,
		})

		var task entity.RenderTask
		if err := json.Unmarshal(msg.Value, &task); err != nil || task.CreativeID == "" {
			entry.WithError(err).Warn("Skipping malformed render task")
			continue
		}

		slots <- struct{}{}
		go func(t entity.RenderTask) {
			defer func() { <-slots }()
			if err := handle(ctx, t); err != nil {
				entry.WithError(err).WithField("creative_id", t.CreativeID).Error("Render task failed")
				return
			}
			entry.WithField("creative_id", t.CreativeID).Info("Render task completed")
		}(task)
	}

	// wait for in-flight renders
	for i := 0; i < workers; i++ {
		slots <- struct{}{}
	}
	return ctx.Err()
}
