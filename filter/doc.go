// Package filter provides whole-bitmap pixel filters built on the bitmap
// transform engine.
//
// This package contains:
//   - Color matrix transformations (invert, grayscale, sepia, ...)
//   - Gaussian and box blur (separable)
//   - Chains that fuse adjacent color matrices into one pass
//
// Every filter returns a new bitmap and leaves its input untouched.
package filter
