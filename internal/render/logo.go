package render

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/internal/customize"
)

// Fetcher retrieves an asset by relative path. Suggested logo icons come
// through here so the pipeline can inline them.
type Fetcher func(ctx context.Context, path string) ([]byte, error)

// suggestedLogoPath maps a suggested-logo catalogue id to its asset path.
func suggestedLogoPath(id string) string {
	return "logos/" + id + ".png"
}

// resolveLogo turns the logo sub-record into render options. Resolution of
// a suggested logo suspends on the asset fetch; a fetch failure clears the
// image with a warning instead of failing the render.
func (p *Pipeline) resolveLogo(ctx context.Context, logo customize.Logo) (dataURI string, raw []byte) {
	switch logo.Type {
	case customize.LogoUploaded:
		if len(logo.File) > 0 {
			return encodeDataURI(detectImageMime("", logo.File), logo.File), logo.File
		}
		if logo.FileID != "" {
			// Persisted reference: a deterministic asset URL is enough, the
			// bytes live with the storage collaborator.
			return p.assetURL(logo.FileID), nil
		}
		return "", nil
	case customize.LogoSuggested:
		if p.fetch == nil {
			p.logger.Warn("no asset fetcher configured, rendering without logo",
				zap.String("logo", logo.ID))
			return "", nil
		}
		path := suggestedLogoPath(logo.ID)
		body, err := p.fetch(ctx, path)
		if err != nil {
			p.logger.Warn("suggested logo unavailable, rendering without logo",
				zap.String("logo", logo.ID), zap.Error(err))
			return "", nil
		}
		// Inlined as base64 so rendering cannot hit cross-origin or
		// not-found failures later.
		return encodeDataURI(detectImageMime(path, body), body), body
	default:
		return "", nil
	}
}

func encodeDataURI(mime string, body []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(body)
}

func detectImageMime(path string, body []byte) string {
	if strings.HasSuffix(path, ".svg") {
		return "image/svg+xml"
	}
	return http.DetectContentType(body)
}
