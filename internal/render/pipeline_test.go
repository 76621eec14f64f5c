package render

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstudio/internal/customize"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
)

func newTestPipeline(fetch Fetcher) *Pipeline {
	return NewPipeline(nil, payload.Codec{AssetBase: "https://cdn.example.com"}, fetch, nil)
}

func TestNewPipeline_StartsFromDefaults(t *testing.T) {
	p := newTestPipeline(nil)

	o := p.Current()
	assert.Equal(t, DefaultSize, o.Size)
	assert.Equal(t, "square", o.DotsType)
	assert.Equal(t, "square", o.CornerSquareType)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, o.Foreground)
	assert.False(t, o.FrameActive)
	assert.Empty(t, o.LogoDataURI)
}

func TestApply_ResolvesStyleAndShape(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Style.DotsStyle = "dots-circle"
	s.Style.ForegroundColor = "#336699"
	s.Shape.CornerSquareStyle = "corner-square-rounded"
	s.Shape.CornerDotStyle = "corner-dot-dot"

	p.Apply(context.Background(), s)

	o := p.Current()
	assert.Equal(t, "dots", o.DotsType)
	assert.Equal(t, "rounded", o.CornerSquareType)
	assert.Equal(t, "dot", o.CornerDotType)
	assert.Equal(t, color.RGBA{0x33, 0x66, 0x99, 255}, o.Foreground)
}

func TestApply_UnknownStyleIDFallsBackToDefault(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Style.DotsStyle = "dots-heptagram"
	s.Shape.CornerSquareStyle = "corner-square-rounded"

	p.Apply(context.Background(), s)

	o := p.Current()
	assert.Equal(t, "square", o.DotsType)
	// A malformed dots id does not invalidate the shape sub-record.
	assert.Equal(t, "rounded", o.CornerSquareType)
}

func TestApply_FrameActivation(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Frame = customize.Frame{ID: "frame-scan-me", Color: "#336699"}

	p.Apply(context.Background(), s)
	assert.True(t, p.Current().FrameActive)

	s.Frame = customize.Frame{ID: customize.FrameNone}
	p.Apply(context.Background(), s)
	assert.False(t, p.Current().FrameActive)
	assert.Equal(t, customize.Frame{ID: customize.FrameNone}, p.State().Frame)
}

func TestApply_UploadedLogoFileBecomesDataURI(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Logo = customize.Logo{Type: customize.LogoUploaded, File: []byte{0x89, 'P', 'N', 'G'}}

	p.Apply(context.Background(), s)

	o := p.Current()
	assert.Contains(t, o.LogoDataURI, "base64,")
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, o.LogoPNG)
}

func TestApply_PersistedLogoReferenceUsesAssetURL(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Logo = customize.Logo{Type: customize.LogoUploaded, FileID: "f_42"}

	p.Apply(context.Background(), s)

	assert.Equal(t, "https://cdn.example.com/files/f_42", p.Current().LogoDataURI)
}

func TestApply_SuggestedLogoFetchInlined(t *testing.T) {
	p := newTestPipeline(func(_ context.Context, path string) ([]byte, error) {
		assert.Equal(t, "logos/star.png", path)
		return []byte{0x89, 'P', 'N', 'G'}, nil
	})
	s := customize.Default()
	s.Logo = customize.Logo{Type: customize.LogoSuggested, ID: "star"}

	p.Apply(context.Background(), s)

	assert.Contains(t, p.Current().LogoDataURI, "base64,")
}

func TestApply_SuggestedLogoFetchFailureClearsImage(t *testing.T) {
	p := newTestPipeline(func(context.Context, string) ([]byte, error) {
		return nil, errors.New("asset server down")
	})
	s := customize.Default()
	s.Logo = customize.Logo{Type: customize.LogoSuggested, ID: "star"}

	p.Apply(context.Background(), s)

	assert.Empty(t, p.Current().LogoDataURI)
}

func TestApply_LogoNoneClearsImage(t *testing.T) {
	p := newTestPipeline(nil)
	s := customize.Default()
	s.Logo = customize.Logo{Type: customize.LogoUploaded, File: []byte{1}}
	p.Apply(context.Background(), s)
	require.NotEmpty(t, p.Current().LogoDataURI)

	s.Logo = customize.Logo{Type: customize.LogoNone}
	p.Apply(context.Background(), s)

	assert.Empty(t, p.Current().LogoDataURI)
}

func TestApply_StaleLogoResolutionIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	p := newTestPipeline(func(_ context.Context, path string) ([]byte, error) {
		if path == "logos/slow.png" {
			close(started)
			<-release
			return []byte("stale"), nil
		}
		return []byte("fresh"), nil
	})

	slow := customize.Default()
	slow.Logo = customize.Logo{Type: customize.LogoSuggested, ID: "slow"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Apply(context.Background(), slow)
	}()
	<-started

	// A newer customization arrives while the first logo is in flight.
	next := customize.Default()
	next.Logo = customize.Logo{Type: customize.LogoNone}
	p.Apply(context.Background(), next)

	close(release)
	<-done

	// The superseded resolution must not overwrite the newer state.
	assert.Empty(t, p.Current().LogoDataURI)
	assert.Equal(t, customize.LogoNone, p.State().Logo.Type)
}

func TestApply_RacingAppliesKeepNewestStyle(t *testing.T) {
	p := newTestPipeline(nil)

	older := customize.Default()
	older.Style.ForegroundColor = "#111111"
	newer := customize.Default()
	newer.Style.ForegroundColor = "#226644"

	for i := 0; i < 50; i++ {
		// Hold the pipeline lock so both Applies claim their generations
		// before either reaches the renderer, with the older claiming first.
		// Whichever acquires the lock last, the newer style must win.
		p.mu.Lock()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Apply(context.Background(), older)
		}()
		time.Sleep(time.Millisecond)
		go func() {
			defer wg.Done()
			p.Apply(context.Background(), newer)
		}()
		time.Sleep(time.Millisecond)

		p.mu.Unlock()
		wg.Wait()

		require.Equal(t, color.RGBA{0x22, 0x66, 0x44, 255}, p.Current().Foreground)
	}
}

func TestRender_ProducesSVGDocument(t *testing.T) {
	p := newTestPipeline(nil)

	doc, err := p.Render(context.Background(), "https://example.com")

	require.NoError(t, err)
	require.NotNil(t, doc.Root())
	assert.Equal(t, "svg", doc.Root().Tag)
	assert.NotEmpty(t, doc.FindElements("//rect"))
}
