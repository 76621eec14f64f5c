package handlers

import (
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/internal/frame"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/upload"
)

// Handler carries the engine dependencies for the HTTP surface.
type Handler struct {
	logger     *zap.Logger
	codec      payload.Codec
	compositor *frame.Compositor
	fetch      render.Fetcher
	uploads    upload.Uploader
}

// New wires a Handler.
func New(logger *zap.Logger, codec payload.Codec, compositor *frame.Compositor, fetch render.Fetcher, uploads upload.Uploader) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:     logger,
		codec:      codec,
		compositor: compositor,
		fetch:      fetch,
		uploads:    uploads,
	}
}

// pipeline builds a per-request render pipeline; customization sessions over
// plain HTTP are single-shot, so each request owns its renderer.
func (h *Handler) pipeline() *render.Pipeline {
	return render.NewPipeline(h.compositor, h.codec, h.fetch, h.logger)
}
