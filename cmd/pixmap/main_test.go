package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/bitmap/internal/pipeline"
)

func TestApplyFlags(t *testing.T) {
	cfg := &pipeline.Config{Filters: []pipeline.Filter{{Name: "sepia"}}}
	require.NoError(t, applyFlags(cfg, "invert, blur", 2, "64x32", "nearest", 3))

	assert.Equal(t, []pipeline.Filter{
		{Name: "sepia"},
		{Name: "invert", Amount: 2},
		{Name: "blur", Amount: 2},
	}, cfg.Filters)
	assert.Equal(t, &pipeline.Resize{Width: 64, Height: 32, Method: "nearest"}, cfg.Resize)
	assert.Equal(t, 3, cfg.Workers)
}

func TestApplyFlags_Errors(t *testing.T) {
	assert.Error(t, applyFlags(&pipeline.Config{}, "", 1, "big", "linear", 0))
	assert.ErrorIs(t, applyFlags(&pipeline.Config{}, "nope", 1, "", "linear", 0), pipeline.ErrInvalidConfig)
	assert.ErrorIs(t, applyFlags(&pipeline.Config{}, "", 1, "0x10", "linear", 0), pipeline.ErrInvalidConfig)
	assert.ErrorIs(t, applyFlags(&pipeline.Config{}, "", 1, "", "linear", -2), pipeline.ErrInvalidConfig)
}
