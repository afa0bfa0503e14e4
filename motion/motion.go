// Package motion records a bounded history of device attitude samples.
package motion

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/ring"
)

// DefaultCapacity is the number of samples kept when New is given 0.
const DefaultCapacity = 10

// Sample is the device attitude at a point in time. Angles are in radians.
type Sample struct {
	Timestamp time.Duration
	Roll      float64
	Pitch     float64
	Yaw       float64
}

func (s Sample) valid() bool {
	for _, v := range []float64{s.Roll, s.Pitch, s.Yaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Observer keeps the most recent samples it is given.
//
// When relative to an anchor, each sample is reported as the rotation from
// the anchor attitude. The anchor is the first sample observed after New or
// ResetAnchor.
//
// Observer is safe for concurrent use.
type Observer struct {
	mu       sync.Mutex
	samples  *ring.Ring[Sample]
	relative bool
	anchor   *quat
}

// New creates an observer holding up to capacity samples. A capacity of 0
// selects DefaultCapacity.
func New(capacity int, relativeToAnchor bool) (*Observer, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	r, err := ring.New[Sample](capacity)
	if err != nil {
		return nil, fmt.Errorf("motion: %w", err)
	}
	return &Observer{samples: r, relative: relativeToAnchor}, nil
}

// Observe records s. Samples with non-finite angles are dropped.
func (o *Observer) Observe(s Sample) {
	if !s.valid() {
		bitmap.Logger().Warn("motion: dropped sample", "timestamp", s.Timestamp,
			"roll", s.Roll, "pitch", s.Pitch, "yaw", s.Yaw)
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.relative {
		q := fromEuler(s.Roll, s.Pitch, s.Yaw)
		if o.anchor == nil {
			o.anchor = &q
		}
		s.Roll, s.Pitch, s.Yaw = o.anchor.conj().mul(q).euler()
	}
	o.samples.Add(s)
}

// Run observes samples from ch until ch is closed or ctx is done.
func (o *Observer) Run(ctx context.Context, ch <-chan Sample) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-ch:
			if !ok {
				return nil
			}
			o.Observe(s)
		}
	}
}

// ResetAnchor makes the next observed sample the new reference frame.
func (o *Observer) ResetAnchor() {
	o.mu.Lock()
	o.anchor = nil
	o.mu.Unlock()
}

// LatestSamples returns the retained samples, most recent first.
func (o *Observer) LatestSamples() []Sample {
	o.mu.Lock()
	v := o.samples.Values()
	o.mu.Unlock()

	slices.Reverse(v)
	return v
}

// Count returns how many samples have been recorded, including those no
// longer retained.
func (o *Observer) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.samples.Count()
}

// quat is a unit rotation quaternion.
type quat struct{ w, x, y, z float64 }

// fromEuler builds the rotation for yaw about Z, then pitch about Y, then
// roll about X.
func fromEuler(roll, pitch, yaw float64) quat {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)
	return quat{
		w: cr*cp*cy + sr*sp*sy,
		x: sr*cp*cy - cr*sp*sy,
		y: cr*sp*cy + sr*cp*sy,
		z: cr*cp*sy - sr*sp*cy,
	}
}

func (q quat) conj() quat {
	return quat{w: q.w, x: -q.x, y: -q.y, z: -q.z}
}

func (q quat) mul(r quat) quat {
	return quat{
		w: q.w*r.w - q.x*r.x - q.y*r.y - q.z*r.z,
		x: q.w*r.x + q.x*r.w + q.y*r.z - q.z*r.y,
		y: q.w*r.y - q.x*r.z + q.y*r.w + q.z*r.x,
		z: q.w*r.z + q.x*r.y - q.y*r.x + q.z*r.w,
	}
}

func (q quat) euler() (roll, pitch, yaw float64) {
	roll = math.Atan2(2*(q.w*q.x+q.y*q.z), 1-2*(q.x*q.x+q.y*q.y))
	sp := 2 * (q.w*q.y - q.z*q.x)
	pitch = math.Asin(max(-1, min(1, sp)))
	yaw = math.Atan2(2*(q.w*q.z+q.x*q.y), 1-2*(q.y*q.y+q.z*q.z))
	return roll, pitch, yaw
}
