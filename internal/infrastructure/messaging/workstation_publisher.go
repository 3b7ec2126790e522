package messaging

import (
	"context"

	"github.com/oksasatya/worksafe-api/internal/domain/event"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

// WorkstationPublisher puts workstation lifecycle events on the events queue.
type WorkstationPublisher struct {
	pub *helpers.RabbitPublisher
}

func NewWorkstationPublisher(pub *helpers.RabbitPublisher) *WorkstationPublisher {
	return &WorkstationPublisher{pub: pub}
}

func (p *WorkstationPublisher) Publish(ctx context.Context, ev event.WorkstationEvent) error {
	return p.pub.PublishJSON(ctx, ev.Type, ev.ID, ev)
}
