package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-desk/internal/logging"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type sequencer interface {
	Sequence() uint64
}

// Handler reports whether the store is reachable.
type Handler struct {
	DB  pinger
	Hub sequencer
}

func NewHandler(db pinger, hub sequencer) Handler {
	return Handler{DB: db, Hub: hub}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.DB != nil {
		if err := h.DB.PingContext(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return fmt.Errorf("status: ping database: %w", err)
		}
	}
	if h.Hub != nil {
		logData.AddData("invalidations", h.Hub.Sequence())
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
