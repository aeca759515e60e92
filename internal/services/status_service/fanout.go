package status_service

import (
	"context"

	"github.com/iwtcode/velvetpour/internal/interfaces"
)

// FanOut рассылает событие всем издателям (websocket-наблюдатели, Kafka).
type FanOut []interfaces.EventPublisher

func (f FanOut) Publish(ctx context.Context, event string, payload interface{}) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, event, payload)
		}
	}
}
