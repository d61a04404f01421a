package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

type eventsHandler struct {
	ctx context.Context
}

func NewEventsHandler(ctx context.Context) EventHandler {
	return &eventsHandler{ctx: ctx}
}

func (h *eventsHandler) Emit(name string, data ...interface{}) {
	wailsruntime.EventsEmit(h.ctx, name, data...)
}

func (h *eventsHandler) Quit() {
	wailsruntime.Quit(h.ctx)
}
