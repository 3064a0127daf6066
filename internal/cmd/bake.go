package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/dropshadow/internal/pipeline"
	"github.com/MeKo-Tech/dropshadow/internal/shadow"
	"github.com/MeKo-Tech/dropshadow/internal/worker"
)

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Bake shadow bitmaps",
	Long: `Bake standalone shadow bitmaps from source sprites.

Each baked shadow is written as a PNG next to a JSON sidecar carrying the
pivot and origin offsets needed to place it.`,
	RunE: runBake,
}

func init() {
	rootCmd.AddCommand(bakeCmd)

	bakeCmd.Flags().StringP("input", "i", "", "Source sprite PNG (single file mode)")
	bakeCmd.Flags().String("input-dir", "", "Directory of source PNGs (batch mode)")
	bakeCmd.Flags().StringP("output-dir", "o", ".", "Output directory for baked shadows")
	bakeCmd.Flags().Bool("force", false, "Overwrite existing baked shadows")
	bakeCmd.Flags().Bool("spread-in-bake", false, "Also apply the spread remap to the baked layer (preview-only by default)")
	bakeCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers for batch mode (default: number of CPUs)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"bake.input", "input"},
		{"bake.input_dir", "input-dir"},
		{"bake.output_dir", "output-dir"},
		{"bake.force", "force"},
		{"bake.spread_in_bake", "spread-in-bake"},
		{"bake.workers", "workers"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, bakeCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// shadowBaker adapts the pipeline to the worker pool's Baker interface.
type shadowBaker struct {
	params    shadow.Params
	opts      pipeline.Options
	outputDir string
}

// Bake renders the shadow for a single source file and writes the PNG and
// placement sidecar. It returns the baked PNG path.
func (b *shadowBaker) Bake(ctx context.Context, sourcePath string, force bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	pngPath := filepath.Join(b.outputDir, base+"_shadow.png")
	metaPath := filepath.Join(b.outputDir, base+"_shadow.json")

	if !force {
		if _, err := os.Stat(pngPath); err == nil {
			return pngPath, nil
		}
	}

	src, err := pipeline.ReadSource(sourcePath)
	if err != nil {
		return "", err
	}

	res, err := pipeline.Bake(src, b.params, b.opts)
	if err != nil {
		return "", fmt.Errorf("failed to bake %s: %w", sourcePath, err)
	}

	if err := pipeline.WritePNG(pngPath, res.Image); err != nil {
		return "", err
	}
	if err := pipeline.WritePlacement(metaPath, pipeline.PlacementFor(res)); err != nil {
		return "", err
	}

	return pngPath, nil
}

func runBake(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	input := viper.GetString("bake.input")
	inputDir := viper.GetString("bake.input_dir")
	outputDir := viper.GetString("bake.output_dir")
	force := viper.GetBool("bake.force")

	if input == "" && inputDir == "" {
		return fmt.Errorf("either --input or --input-dir is required")
	}
	if input != "" && inputDir != "" {
		return fmt.Errorf("--input and --input-dir are mutually exclusive")
	}

	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	baker := &shadowBaker{
		params:    params,
		opts:      pipeline.Options{SpreadInBake: viper.GetBool("bake.spread_in_bake")},
		outputDir: outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if input != "" {
		path, err := baker.Bake(ctx, input, force)
		if err != nil {
			return err
		}
		logger.Info("Baked shadow", "source", input, "output", path)
		return nil
	}

	return runBatchBake(ctx, baker, inputDir, force)
}

func runBatchBake(ctx context.Context, baker *shadowBaker, inputDir string, force bool) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read input dir: %w", err)
	}

	var tasks []worker.Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		tasks = append(tasks, worker.Task{
			SourcePath: filepath.Join(inputDir, entry.Name()),
			Force:      force,
		})
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no PNG sources found in %s", inputDir)
	}

	workers := viper.GetInt("bake.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := worker.New(worker.Config{
		Workers: workers,
		Baker:   baker,
		OnProgress: func(completed, total, failed int) {
			logger.Debug("Bake progress", "completed", completed, "total", total, "failed", failed)
		},
	})

	results := pool.Run(ctx, tasks)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Error("Bake failed", "source", res.Task.SourcePath, "err", res.Err)
		}
	}

	logger.Info("Batch bake complete", "total", len(results), "failed", failed, "workers", workers)
	if failed > 0 {
		return fmt.Errorf("%d of %d bakes failed", failed, len(results))
	}
	return nil
}
