package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

func TestGetKnownProfile(t *testing.T) {
	p := Get("minimal")
	assert.Equal(t, "minimal", p.Name)
	assert.Equal(t, colorcore.Fast, p.Tier)
}

func TestGetUnknownProfileFallsBackButKeepsName(t *testing.T) {
	p := Get("nonexistent")
	assert.Equal(t, "nonexistent", p.Name)
	assert.Equal(t, profiles["web-preview"].MaxSizes, p.MaxSizes)
}

func TestEffectiveSizesExcludesUpscaleAndAddsRetina(t *testing.T) {
	p := Profile{MaxSizes: []int{100, 200, 400}, Retina: true}
	sizes := p.EffectiveSizes(300)
	assert.Equal(t, []int{100, 200}, sizes)
}

func TestEffectiveSizesFallsBackToSourceWhenNothingFits(t *testing.T) {
	p := Profile{MaxSizes: []int{1000}}
	sizes := p.EffectiveSizes(50)
	assert.Equal(t, []int{50}, sizes)
}
