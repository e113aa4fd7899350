package colour

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"math/rand"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/hashicorp/go-hclog"
)

// Extractor defines the interface for palette extraction algorithms.
type Extractor interface {
	// Extract extracts a palette from a raster.
	Extract(r *Raster) (*Palette, error)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans samples pixels and clusters them with k-means.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant uses the dominantcolor package's weighted k-means.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmDominant}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	Algorithm Algorithm
	// MaxColours is the maximum number of palette entries returned.
	// Clustering never produces more than MaxClusters.
	MaxColours int
	// SampleBudget is the approximate number of pixels sampled.
	SampleBudget int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:    AlgorithmKMeans,
		MaxColours:   DefaultMaxColours,
		SampleBudget: DefaultSampleBudget,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.MaxColours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.MaxColours)
	}
	if c.SampleBudget < 1 {
		return fmt.Errorf("sample budget must be at least 1, got %d", c.SampleBudget)
	}
	return nil
}

// NewExtractor creates an Extractor for the configured algorithm.
// rng seeds centroid selection for the k-means extractor; logger may be nil.
func NewExtractor(config ExtractorConfig, rng *rand.Rand, logger hclog.Logger) (Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch config.Algorithm {
	case AlgorithmKMeans:
		return NewKMeansExtractor(config, rng, logger), nil
	case AlgorithmDominant:
		return NewDominantExtractor(config, logger), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", config.Algorithm, ValidAlgorithms())
	}
}

// ExtractImage converts img to a raster and runs e over it.
func ExtractImage(e Extractor, img image.Image) (*Palette, error) {
	r, err := NewRaster(img)
	if err != nil {
		return nil, err
	}
	return e.Extract(r)
}

// KMeansExtractor samples a raster, clusters the samples and formats the result.
type KMeansExtractor struct {
	config ExtractorConfig
	kmeans *KMeans
	logger hclog.Logger
}

// NewKMeansExtractor creates a KMeansExtractor. The config is not validated here.
func NewKMeansExtractor(config ExtractorConfig, rng *rand.Rand, logger hclog.Logger) *KMeansExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansExtractor{
		config: config,
		kmeans: NewKMeans(rng, logger.Named("kmeans")),
		logger: logger,
	}
}

// Extract returns the dominant colours of r. A raster without opaque pixels
// yields an empty palette; an invalid raster yields an error wrapping
// ErrInvalidRaster.
func (e *KMeansExtractor) Extract(r *Raster) (*Palette, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	pixels := SamplePixels(r, e.config.SampleBudget)
	e.logger.Debug("sampled raster",
		"width", r.Width,
		"height", r.Height,
		"budget", e.config.SampleBudget,
		"samples", len(pixels),
	)
	if len(pixels) == 0 {
		return &Palette{Colors: []PaletteColor{}}, nil
	}

	// Clusters are requested up to the palette size; MaxClusters still applies.
	clusters := e.kmeans.Cluster(pixels, e.config.MaxColours)
	return FormatPalette(clusters, e.config.MaxColours), nil
}

// DominantExtractor delegates clustering to github.com/cenkalti/dominantcolor
// and apportions its weights over the sampled population.
type DominantExtractor struct {
	config ExtractorConfig
	logger hclog.Logger
}

// NewDominantExtractor creates a DominantExtractor. The config is not validated here.
func NewDominantExtractor(config ExtractorConfig, logger hclog.Logger) *DominantExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DominantExtractor{config: config, logger: logger}
}

// Extract returns the dominant colours of r. Pixels below AlphaThreshold
// are hidden from dominantcolor, and entry counts sum to the number of
// pixels SamplePixels would draw from r.
func (e *DominantExtractor) Extract(r *Raster) (*Palette, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	samples := len(SamplePixels(r, e.config.SampleBudget))
	if samples == 0 {
		return &Palette{Colors: []PaletteColor{}}, nil
	}

	found := dominantcolor.FindWeight(opaqueImage(r), min(e.config.MaxColours, MaxClusters))

	centroids := make([]Pixel, 0, len(found))
	weights := make([]float64, 0, len(found))
	for _, c := range found {
		if math.IsNaN(c.Weight) || c.Weight <= 0 {
			continue
		}
		centroids = append(centroids, Pixel{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
		weights = append(weights, c.Weight)
	}
	e.logger.Debug("dominant colours found", "samples", samples, "colours", len(centroids))
	if len(centroids) == 0 {
		return &Palette{Colors: []PaletteColor{}}, nil
	}

	counts := apportion(weights, samples)
	clusters := make([]Cluster, len(centroids))
	for i, c := range centroids {
		clusters[i] = Cluster{Centroid: c, Count: counts[i]}
	}
	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return b.Count - a.Count
	})

	return FormatPalette(clusters, e.config.MaxColours), nil
}

// opaqueImage copies r with pixels below AlphaThreshold made fully
// transparent and every other pixel made fully opaque. dominantcolor only
// skips alpha 0 and reads premultiplied values.
func opaqueImage(r *Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	for off := 0; off < len(img.Pix); off += 4 {
		if img.Pix[off+3] < AlphaThreshold {
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = 0, 0, 0, 0
		} else {
			img.Pix[off+3] = 0xff
		}
	}
	return img
}

// apportion splits total in proportion to weights using the largest
// remainder method, so the parts always sum to total.
func apportion(weights []float64, total int) []int {
	counts := make([]int, len(weights))
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 || total <= 0 {
		return counts
	}

	type remainder struct {
		index int
		frac  float64
	}
	remainders := make([]remainder, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / sum * float64(total)
		counts[i] = int(exact)
		assigned += counts[i]
		remainders[i] = remainder{index: i, frac: exact - float64(counts[i])}
	}

	slices.SortStableFunc(remainders, func(a, b remainder) int {
		return cmp.Compare(b.frac, a.frac)
	})
	for i := 0; assigned < total; i++ {
		counts[remainders[i%len(remainders)].index]++
		assigned++
	}
	return counts
}
