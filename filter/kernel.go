package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a 1D Gaussian kernel for the given radius.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is computed as 2 * ceil(radius * 3) + 1, which covers
// 99.7% of the Gaussian distribution (3 standard deviations).
//
// For radius <= 0 or NaN, returns a single-element kernel [1.0] (identity).
// Radii above MaxBlurRadius are clamped.
func GaussianKernel(radius float64) []float32 {
	if !(radius > 0) {
		return []float32{1.0}
	}
	radius = min(radius, MaxBlurRadius)

	// radius is used as sigma
	half := int(math.Ceil(radius * 3))
	size := half*2 + 1

	kernel := make([]float32, size)
	twoSigmaSq := 2 * radius * radius
	sum := float64(0)

	for i := range size {
		x := float64(i - half)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	inv := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}

	return kernel
}

// BoxKernel generates a 1D box (uniform) kernel for the given radius.
// All values are equal: 1/(2*radius+1). Radii above MaxBlurRadius are
// clamped.
func BoxKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}
	radius = min(radius, MaxBlurRadius)

	size := radius*2 + 1
	kernel := make([]float32, size)
	val := float32(1.0) / float32(size)

	for i := range kernel {
		kernel[i] = val
	}

	return kernel
}

// kernelCache caches computed Gaussian kernels.
// Key is radius * 100 (to handle float precision), value is kernel.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(radius float64) []float32 {
	if !(radius > 0) {
		radius = 0
	}
	key := int(min(radius, MaxBlurRadius) * 100)

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Evict half; kernels are cheap to rebuild.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel returns a cached Gaussian kernel for the radius,
// quantized to 0.01. The returned slice must not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	return defaultKernelCache.get(radius)
}
