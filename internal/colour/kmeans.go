package colour

import (
	"math/rand"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// MaxClusters caps the number of clusters regardless of the requested count.
	MaxClusters = 12

	// MaxIterations caps the number of assignment and update passes.
	MaxIterations = 30

	// maxDistance exceeds any squared distance between two 8-bit RGB vectors.
	maxDistance = 3*255*255 + 1
)

// Cluster is a centroid colour and the number of sampled pixels assigned to it.
type Cluster struct {
	Centroid Pixel
	Count    int
}

// clusterSum accumulates member components for one update pass.
type clusterSum struct {
	r, g, b int
	count   int
}

// mean returns the component-wise mean rounded half up.
func (s clusterSum) mean() Pixel {
	return Pixel{
		R: roundedMean(s.r, s.count),
		G: roundedMean(s.g, s.count),
		B: roundedMean(s.b, s.count),
	}
}

func roundedMean(sum, count int) uint8 {
	return uint8((2*sum + count) / (2 * count))
}

// KMeans partitions sampled pixels into at most MaxClusters clusters.
// A KMeans owns its random source and must not be shared between goroutines.
type KMeans struct {
	rng           *rand.Rand
	maxIterations int
	logger        hclog.Logger
}

// NewKMeans creates a clusterer drawing initial centroids from rng.
// A nil rng is replaced by a time-seeded source.
func NewKMeans(rng *rand.Rand, logger hclog.Logger) *KMeans {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- centroid seeding, not security sensitive
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeans{
		rng:           rng,
		maxIterations: MaxIterations,
		logger:        logger,
	}
}

// Cluster runs k-means over pixels and returns the clusters ordered by
// descending member count. Counts always sum to len(pixels). Clusters that
// end up without members are kept and sort last.
func (km *KMeans) Cluster(pixels []Pixel, k int) []Cluster {
	k = min(k, MaxClusters, len(pixels))
	if k < 1 {
		return nil
	}

	centroids := km.initialCentroids(pixels, k)
	assignments := make([]int, len(pixels))
	for i := range assignments {
		assignments[i] = -1
	}

	iterations := 0
	converged := false
	for iterations < km.maxIterations {
		iterations++

		changed := 0
		for i, p := range pixels {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		km.logger.Trace("kmeans pass", "iteration", iterations, "changed", changed)

		if changed == 0 {
			converged = true
			break
		}

		sums := make([]clusterSum, k)
		for i, p := range pixels {
			s := &sums[assignments[i]]
			s.r += int(p.R)
			s.g += int(p.G)
			s.b += int(p.B)
			s.count++
		}
		for i, s := range sums {
			// Empty clusters keep their previous centroid.
			if s.count > 0 {
				centroids[i] = s.mean()
			}
		}
	}

	clusters := make([]Cluster, k)
	for i, c := range centroids {
		clusters[i].Centroid = c
	}
	for _, a := range assignments {
		clusters[a].Count++
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return b.Count - a.Count
	})

	km.logger.Debug("kmeans finished",
		"samples", len(pixels),
		"clusters", k,
		"iterations", iterations,
		"converged", converged,
	)

	return clusters
}

// initialCentroids picks k distinct sample indices uniformly without
// replacement using a partial Fisher-Yates shuffle.
func (km *KMeans) initialCentroids(pixels []Pixel, k int) []Pixel {
	indices := make([]int, len(pixels))
	for i := range indices {
		indices[i] = i
	}

	centroids := make([]Pixel, k)
	for i := range k {
		j := i + km.rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
		centroids[i] = pixels[indices[i]]
	}

	return centroids
}

// distanceSquared returns the squared Euclidean distance between two pixels.
func distanceSquared(a, b Pixel) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// nearestCentroid returns the index of the closest centroid.
// Ties go to the lowest index.
func nearestCentroid(p Pixel, centroids []Pixel) int {
	best := 0
	bestDist := maxDistance
	for i, c := range centroids {
		if d := distanceSquared(p, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
