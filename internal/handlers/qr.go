package handlers

import (
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/internal/customize"
	"github.com/cristianadrielbraun/qrstudio/internal/frame"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/project"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

const (
	previewPixels  = 300
	downloadPixels = 2000
)

// QRCodeHandler renders a QR for typed content with full customization.
// Query params select the content type and its form fields, the style,
// shape, frame and logo, plus format (png or svg) and size (preview or
// download).
func (h *Handler) QRCodeHandler(c *gin.Context) {
	contentType := payload.ContentType(c.DefaultQuery("type", string(payload.TypeWebsite)))
	if !contentType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown content type %q", contentType)})
		return
	}

	values, err := formFromQuery(c, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.codec.Encode(contentType, values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to encode"})
		return
	}

	state := stateFromQuery(c)
	p := h.pipeline()
	p.Apply(c.Request.Context(), state)

	format := strings.ToLower(c.DefaultQuery("format", "png"))
	highRes := c.DefaultQuery("size", "preview") == "download"

	h.logger.Debug("qr render request",
		zap.String("type", string(contentType)),
		zap.String("format", format),
		zap.Bool("highRes", highRes),
		zap.String("frame", state.Frame.ID))

	if format == "svg" {
		doc, err := p.Render(c.Request.Context(), content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out, err := doc.WriteToString()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "image/svg+xml", []byte(out))
		return
	}

	// PNG. With a frame active the composed vector graphic is projected to
	// raster; without one the matrix writer's own raster path is cheaper.
	if state.Frame.Active() {
		doc, err := p.Render(c.Request.Context(), content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pixels := previewPixels
		if highRes {
			pixels = downloadPixels
		}
		img, err := project.Rasterize(doc, pixels)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := png.Encode(c.Writer, img); err != nil {
			h.logger.Warn("failed to stream projected png", zap.Error(err))
		}
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := p.ExportPNG(content, c.Writer, highRes); err != nil {
		h.logger.Warn("failed to stream png export", zap.Error(err))
	}
}

// DecodeHandler reverses a payload string for edit pre-filling. Decoding
// never fails; unparseable payloads come back as the type's defaults.
func (h *Handler) DecodeHandler(c *gin.Context) {
	var req struct {
		Type    payload.ContentType `json:"type" binding:"required"`
		Payload string              `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown content type %q", req.Type)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":   req.Type,
		"values": payload.Decode(req.Type, req.Payload),
	})
}

// LogoUploadHandler accepts a logo image and returns the opaque file id the
// customization state references.
func (h *Handler) LogoUploadHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileID, err := h.uploads.Store(file.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileId":   fileID,
		"assetUrl": h.codec.AssetURL(fileID),
	})
}

// CataloguesHandler lists the style catalogues and frame templates for
// picker UIs.
func (h *Handler) CataloguesHandler(c *gin.Context) {
	frames := make([]gin.H, 0, len(frame.Templates())+1)
	frames = append(frames, gin.H{"id": customize.FrameNone})
	for _, t := range frame.Templates() {
		frames = append(frames, gin.H{"id": t.ID, "url": t.URL})
	}

	c.JSON(http.StatusOK, gin.H{
		"dots":          style.Dots.Options(),
		"cornerSquares": style.CornerSquares.Options(),
		"cornerDots":    style.CornerDots.Options(),
		"frames":        frames,
	})
}

// formFromQuery builds the typed form record for a content type from query
// parameters. Field validation beyond shape belongs to the form layer.
func formFromQuery(c *gin.Context, t payload.ContentType) (payload.FormValues, error) {
	switch t {
	case payload.TypeWebsite, payload.TypeAppLink, payload.TypeSocial, payload.TypeFeedback:
		u := strings.TrimSpace(c.Query("url"))
		if u == "" {
			return nil, fmt.Errorf("url parameter is required")
		}
		return payload.URLForm{URL: u}, nil
	case payload.TypeWhatsApp:
		number := strings.TrimSpace(c.Query("number"))
		if number == "" {
			return nil, fmt.Errorf("number parameter is required")
		}
		return payload.WhatsAppForm{Number: number, Message: c.Query("message")}, nil
	case payload.TypeWiFi:
		return payload.WiFiForm{
			NetworkName:       c.Query("networkName"),
			NetworkPassword:   c.Query("networkPassword"),
			NetworkEncryption: c.DefaultQuery("networkEncryption", "WPA"),
			IsHiddenNetwork:   c.Query("hidden") == "true",
		}, nil
	default: // image, pdf, video
		return payload.FileForm{FileID: c.Query("fileId")}, nil
	}
}

// stateFromQuery assembles the customization state from query parameters,
// falling back to defaults for anything unspecified.
func stateFromQuery(c *gin.Context) customize.State {
	s := customize.Default()

	if v := c.Query("dots"); v != "" {
		s.Style.DotsStyle = v
	}
	if v := c.Query("fg"); v != "" {
		s.Style.ForegroundColor = v
	}
	if v := c.Query("bg"); v != "" {
		s.Style.BackgroundColor = v
	}
	if v := c.Query("cornerSquare"); v != "" {
		s.Shape.CornerSquareStyle = v
	}
	if v := c.Query("cornerDot"); v != "" {
		s.Shape.CornerDotStyle = v
	}

	if v := c.Query("frame"); v != "" {
		s.Frame = customize.Frame{
			ID:        v,
			Color:     c.Query("frameColor"),
			TextColor: c.Query("frameTextColor"),
			Text:      c.Query("frameText"),
		}
	}

	switch logo := c.Query("logo"); {
	case strings.HasPrefix(logo, "suggested:"):
		s.Logo = customize.Logo{Type: customize.LogoSuggested, ID: strings.TrimPrefix(logo, "suggested:")}
	case strings.HasPrefix(logo, "uploaded:"):
		s.Logo = customize.Logo{Type: customize.LogoUploaded, FileID: strings.TrimPrefix(logo, "uploaded:")}
	}

	return s.Normalized()
}
