package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/config"
	"github.com/cristianadrielbraun/qrstudio/internal/frame"
	"github.com/cristianadrielbraun/qrstudio/internal/handlers"
	"github.com/cristianadrielbraun/qrstudio/internal/logger"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/upload"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Production)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Static assets
	r.Static("/web/assets", cfg.AssetsDir)
	r.Static("/files", cfg.UploadDir)

	codec := payload.Codec{AssetBase: cfg.StorageBaseURL, Logger: zl}
	cache := frame.NewTemplateCache(frame.DirLoader(cfg.AssetsDir))
	measurer := frame.NewFontMeasurer(cfg.FrameFontPath)
	compositor := frame.NewCompositor(cache, measurer, zl)

	fetch := render.Fetcher(func(_ context.Context, path string) ([]byte, error) {
		return os.ReadFile(filepath.Join(cfg.AssetsDir, filepath.FromSlash(path)))
	})

	uploads, err := upload.NewDiskStore(cfg.UploadDir, zl)
	if err != nil {
		zl.Fatal("upload store unavailable", zap.Error(err))
	}

	// API routes
	h := handlers.New(zl, codec, compositor, fetch, uploads)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr/decode", h.DecodeHandler)
		api.POST("/logo", h.LogoUploadHandler)
		api.GET("/styles", h.CataloguesHandler)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	zl.Info("qrstudio listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}
