package ws

import (
	"context"
	"encoding/json"
	"time"

	"team-formation/internal/usecase"

	"go.uber.org/zap"
)

// ProjectEvent is the message sent to websocket clients.
type ProjectEvent struct {
	usecase.Event
	Timestamp string `json:"timestamp"`
}

// Notifier publishes usecase events to every client of the hub.
type Notifier struct {
	hub *Hub
	log *zap.Logger
	now func() time.Time
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, log: log.Named("ws"), now: time.Now}
}

func (n *Notifier) Publish(_ context.Context, ev usecase.Event) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(ProjectEvent{Event: ev, Timestamp: n.now().UTC().Format(time.RFC3339)})
	if err != nil {
		n.log.Warn("encode event failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	n.hub.Broadcast(b)
}
