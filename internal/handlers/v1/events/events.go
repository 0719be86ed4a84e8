package events

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-desk/internal/notify"
)

const bufferSize = 32

type invalidationSource interface {
	Channel(size int) (<-chan notify.Invalidation, func())
}

// Handler streams invalidations to clients as server-sent events.
type Handler struct {
	Hub invalidationSource
}

func NewHandler(hub invalidationSource) *Handler {
	return &Handler{Hub: hub}
}

func (h *Handler) Register(api huma.API) {
	sse.Register(api, huma.Operation{
		OperationID: "stream-invalidations",
		Method:      http.MethodGet,
		Path:        "/v1/events",
		Summary:     "Stream invalidations",
		Description: "Emits an invalidation event after every committed write naming the collections it touched.",
		Tags:        []string{"Events"},
	}, map[string]any{
		"invalidation": notify.Invalidation{},
	}, h.stream)
}

func (h *Handler) stream(ctx context.Context, _ *struct{}, send sse.Sender) {
	ch, cancel := h.Hub.Channel(bufferSize)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case inv, ok := <-ch:
			if !ok {
				return
			}
			if err := send(sse.Message{ID: int(inv.Sequence), Data: inv}); err != nil {
				logrus.WithError(err).Debug("Events.stream.send")
				return
			}
		}
	}
}
