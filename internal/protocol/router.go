package protocol

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chaguan/chaguan/internal/coordinate"
	"github.com/chaguan/chaguan/internal/extract"
	"github.com/chaguan/chaguan/internal/model"
)

// selectionTimeout bounds background verification of a user selection
const selectionTimeout = time.Minute

// Router dispatches messages to the coordinator and cache. Delivery is
// best-effort: a selection acknowledged here may still fail later without
// a response arriving anywhere.
type Router struct {
	coordinator *coordinate.Coordinator
	log         *zap.Logger
}

// NewRouter creates a message router over a coordinator
func NewRouter(coordinator *coordinate.Coordinator, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{coordinator: coordinator, log: log}
}

// Handle processes one message and returns its response. Unknown kinds
// are rejected, never silently ignored.
func (r *Router) Handle(ctx context.Context, msg Message) Response {
	r.log.Debug("message received", zap.String("type", string(msg.Type)))

	switch msg.Type {
	case KindVerifyClaim:
		return r.handleVerifyClaim(ctx, msg)
	case KindGetCacheStats:
		return Response{Success: true, Data: r.coordinator.Cache().Stats()}
	case KindClearCache:
		r.coordinator.Cache().Clear()
		return Response{Success: true}
	case KindVerifySelection:
		return r.handleVerifySelection(msg)
	default:
		r.log.Warn("unknown message type", zap.String("type", string(msg.Type)))
		return Response{Success: false, Error: "unknown message type"}
	}
}

func (r *Router) handleVerifyClaim(ctx context.Context, msg Message) Response {
	payload, err := ParseVerifyClaim(msg)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	language := payload.Language
	if language == "" {
		language = extract.DetectLanguage(payload.Text)
	}

	claim := model.NewManualClaim(payload.Text, language)
	result, err := r.coordinator.Resolve(ctx, claim)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	return Response{Success: true, Data: result}
}

// handleVerifySelection acknowledges immediately and verifies in the
// background; the selection path has no caller waiting on the verdict.
func (r *Router) handleVerifySelection(msg Message) Response {
	payload, err := ParseVerifySelection(msg)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	claim := model.NewManualClaim(payload.Text, extract.DetectLanguage(payload.Text))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), selectionTimeout)
		defer cancel()
		if _, err := r.coordinator.Resolve(ctx, claim); err != nil {
			r.log.Warn("selection verification failed", zap.Error(err))
		}
	}()

	return Response{Success: true}
}
