package cmd

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/dropshadow/internal/pipeline"
	"github.com/MeKo-Tech/dropshadow/internal/rendercache"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a composited preview",
	Long: `Render a preview image: background color, shadow layer, and the source
sprite composited in that order.

Previews can be cached in a local SQLite database keyed by the source image
digest and parameter hash, so repeated invocations with unchanged inputs skip
the pixel pipeline.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("input", "i", "", "Source sprite PNG")
	previewCmd.Flags().StringP("output", "o", "preview.png", "Preview output path")
	previewCmd.Flags().String("background", "#FFFFFF", "Preview background color as #RRGGBB")
	previewCmd.Flags().Int("scale", 1, "Integer upscale factor for inspection (Lanczos)")
	previewCmd.Flags().String("cache", "", "Path to a preview cache database (empty disables caching)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"preview.input", "input"},
		{"preview.output", "output"},
		{"preview.background", "background"},
		{"preview.scale", "scale"},
		{"preview.cache", "cache"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, previewCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	input := viper.GetString("preview.input")
	output := viper.GetString("preview.output")
	scale := viper.GetInt("preview.scale")

	if input == "" {
		return fmt.Errorf("--input is required")
	}
	if scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", scale)
	}

	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	background, err := parseHexColor(viper.GetString("preview.background"))
	if err != nil {
		return err
	}

	sourceBytes, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read source image: %w", err)
	}
	sourceDigest := sha256.Sum256(sourceBytes)

	// The cache key covers everything that affects the rendered bytes.
	paramsDigest := fmt.Sprintf("%s-bg%s-scale%d",
		params.Hash(), viper.GetString("preview.background"), scale)

	var cache *rendercache.Cache
	if cachePath := viper.GetString("preview.cache"); cachePath != "" {
		cache, err = rendercache.Open(cachePath)
		if err != nil {
			return err
		}
		defer cache.Close() // nolint:errcheck

		data, ok, err := cache.Get(hex.EncodeToString(sourceDigest[:]), paramsDigest)
		if err != nil {
			return err
		}
		if ok {
			logger.Info("Preview served from cache", "source", input, "output", output)
			return writeBytes(output, data)
		}
	}

	src, err := pipeline.ReadSource(input)
	if err != nil {
		return err
	}

	res, err := pipeline.Preview(src, params, background)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	img := res.Image.ToNRGBA()
	if scale > 1 {
		img = upscale(img, scale)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	if cache != nil {
		if err := cache.Put(hex.EncodeToString(sourceDigest[:]), paramsDigest, buf.Bytes()); err != nil {
			return err
		}
	}

	logger.Info("Preview rendered",
		"source", input,
		"output", output,
		"canvas", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height),
		"pivot", fmt.Sprintf("%.3f,%.3f", res.Canvas.PivotX, res.Canvas.PivotY),
	)
	return writeBytes(output, buf.Bytes())
}

// upscale enlarges the preview by an integer factor using Lanczos resampling.
func upscale(img *image.NRGBA, factor int) *image.NRGBA {
	g := gift.New(gift.Resize(img.Bounds().Dx()*factor, img.Bounds().Dy()*factor, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

func writeBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
