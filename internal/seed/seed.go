// Package seed selects the random seed used to initialise k-means centroids.
// Content and filepath seeds make repeated runs over the same input reproducible.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeContent hashes the raster contents (default).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute image path or URL.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a time-based seed that varies each run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // only used by ModeManual
}

// Calculate determines the seed for the configured mode.
// raster is required for ModeContent and imagePath for ModeFilepath.
func Calculate(raster *colour.Raster, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		return ContentSeed(raster)
	case ModeFilepath:
		return FilepathSeed(imagePath)
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// ContentSeed hashes the raster dimensions and pixel buffer.
func ContentSeed(raster *colour.Raster) (int64, error) {
	if err := raster.Validate(); err != nil {
		return 0, fmt.Errorf("content seed: %w", err)
	}

	hasher := sha256.New()
	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(raster.Width))  // #nosec G115 -- validated positive
	binary.LittleEndian.PutUint32(dims[4:8], uint32(raster.Height)) // #nosec G115 -- validated positive
	hasher.Write(dims)
	hasher.Write(raster.Pix)

	return sumToSeed(hasher.Sum(nil)), nil
}

// FilepathSeed hashes the absolute form of imagePath. URLs are hashed as-is.
func FilepathSeed(imagePath string) (int64, error) {
	if imagePath == "" {
		return 0, fmt.Errorf("image path cannot be empty")
	}

	key := imagePath
	if !isURL(imagePath) {
		if abs, err := filepath.Abs(imagePath); err == nil {
			key = abs
		}
	}

	sum := sha256.Sum256([]byte(key))
	return sumToSeed(sum[:]), nil
}

// RandomSeed returns a time-based seed.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

// NewRand returns a random source seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- centroid seeding, not security sensitive
}

func sumToSeed(sum []byte) int64 {
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- hash conversion is safe
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
