package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/seed"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// extractOptions holds the flags of the extract command.
type extractOptions struct {
	colours   int
	samples   int
	algorithm string
	format    string
	output    string
	preview   string
	seedMode  string
	seedValue int64
	resize    int
	timeout   time.Duration
	cache     bool
	cacheDir  string
	refresh   bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract a ranked palette of dominant colours from an image.

Pixels are sampled on a fixed stride (transparent pixels are skipped),
clustered with k-means (at most 12 clusters) and reported most common first
with hex, RGB and CMYK encodings and their share of the sampled pixels.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF. HTTP(S) URLs are
fetched directly.

Every flag can also be set through an environment variable named
SWATCH_<FLAG>, for example SWATCH_COLOURS=6 or SWATCH_SEED_MODE=random.

Examples:
  # Extract up to 10 colours
  swatch extract leaf.jpg

  # Extract 5 colours as JSON
  swatch extract -c 5 -f json leaf.jpg

  # CSV export to a file
  swatch extract -f csv -o palette.csv leaf.jpg

  # Reproducible run with a fixed seed
  swatch extract --seed 42 leaf.jpg`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.colours, "colours", "c", colour.DefaultMaxColours, fmt.Sprintf("maximum number of colours to return (clustering caps at %d)", colour.MaxClusters))
	flags.IntVar(&opts.samples, "samples", colour.DefaultSampleBudget, "approximate number of pixels to sample")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", string(colour.AlgorithmKMeans), "extraction algorithm (kmeans, dominant)")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format (text, hex, rgb, json, csv, table)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&opts.preview, "preview", previewAuto, "show colour swatches (auto, always, never)")
	flags.StringVar(&opts.seedMode, "seed-mode", string(seed.ModeContent), "centroid seed mode (content, filepath, manual, random)")
	flags.Int64Var(&opts.seedValue, "seed", 0, "seed value; implies --seed-mode manual")
	flags.IntVar(&opts.resize, "resize", 0, "downscale so the longest side is at most this many pixels (0 disables)")
	flags.DurationVar(&opts.timeout, "timeout", httputil.DefaultTimeout, "timeout for fetching remote images")
	flags.BoolVar(&opts.cache, "cache", false, "keep downloaded images on disk and reuse them")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "directory for cached downloads (default: user cache directory)")
	flags.BoolVar(&opts.refresh, "refresh", false, "download again even when a cached copy exists; implies --cache")

	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, imagePath string) error {
	logger := root.logger(cmd)

	config := colour.ExtractorConfig{
		Algorithm:    colour.Algorithm(opts.algorithm),
		MaxColours:   opts.colours,
		SampleBudget: opts.samples,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !isValidFormat(opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %v)", opts.format, validFormats())
	}
	if !isValidPreview(opts.preview) {
		return fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", opts.preview)
	}

	seedConfig, err := seedConfigFromFlags(cmd, opts)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader(httputil.FetchOptions{Timeout: opts.timeout, ImageOnly: true})
	if opts.cache || opts.cacheDir != "" || opts.refresh {
		loader.WithCache(&imagecache.Cache{Dir: opts.cacheDir, Refresh: opts.refresh})
	}
	img, err := loader.Load(cmd.Context(), imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	if opts.resize > 0 {
		img = image.Thumbnail(img, opts.resize)
		logger.Debug("image resized", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}

	raster, err := colour.NewRaster(img)
	if err != nil {
		return fmt.Errorf("failed to read image pixels: %w", err)
	}

	seedValue, err := seed.Calculate(raster, imagePath, seedConfig)
	if err != nil {
		return fmt.Errorf("failed to calculate seed: %w", err)
	}
	logger.Debug("seed selected", "mode", seedConfig.Mode, "seed", seedValue)

	extractor, err := colour.NewExtractor(config, seed.NewRand(seedValue), logger.Named(string(config.Algorithm)))
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	palette, err := extractor.Extract(raster)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Info("palette extracted", "colours", palette.Len(), "sampled", palette.Total)

	out := cmd.OutOrStdout()
	showPreview := wantPreview(opts.preview, opts.format, opts.output, out)

	rendered, err := formatPalette(palette, opts.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(rendered), 0o644); err != nil { // #nosec G306 - palette exports are meant to be shared
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("palette written", "path", opts.output)
		return nil
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}

// seedConfigFromFlags resolves the seed mode. An explicit --seed without
// --seed-mode selects manual mode.
func seedConfigFromFlags(cmd *cobra.Command, opts *extractOptions) (seed.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("seed") && !flags.Changed("seed-mode") {
		opts.seedMode = string(seed.ModeManual)
	}

	mode, err := seed.ParseMode(opts.seedMode)
	if err != nil {
		return seed.Config{}, err
	}

	config := seed.Config{Mode: mode}
	if mode == seed.ModeManual {
		if !flags.Changed("seed") {
			return seed.Config{}, fmt.Errorf("--seed is required with --seed-mode manual")
		}
		value := opts.seedValue
		config.Value = &value
	}
	return config, nil
}
