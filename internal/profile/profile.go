// Package profile holds named batch presets: the set of preview sizes,
// output formats, quality tier, and tone parameters a `batch` run
// applies to every source image it discovers, without requiring a
// config.PreviewConfig per invocation.
package profile

import "github.com/sugi-cho/EXR-Tool/internal/colorcore"

// Profile bundles the PreviewParams that vary per deliverable target
// plus the output formats and encode quality applied to every variant.
type Profile struct {
	Name     string
	MaxSizes []int    // target longer-edge sizes, smallest first
	Formats  []string // output formats in priority order
	Quality  int      // encode quality 1-100 (png ignores it)
	Exposure float32  // stops applied before gamma/sRGB encode
	Gamma    float32  // display gamma; 0 or <=1e-4 means passthrough
	Tier     colorcore.Quality
	Retina   bool // emit a 2x variant alongside each size below the source
}

// Built-in profiles.
var profiles = map[string]Profile{
	"web-preview": {
		Name:     "web-preview",
		MaxSizes: []int{320, 640, 960, 1280},
		Formats:  []string{"webp", "jpeg"},
		Quality:  82,
		Exposure: 0,
		Gamma:    2.2,
		Tier:     colorcore.Fast,
		Retina:   true,
	},
	"web-preview-hq": {
		Name:     "web-preview-hq",
		MaxSizes: []int{320, 640, 960, 1280, 1920},
		Formats:  []string{"png", "webp", "jpeg"},
		Quality:  90,
		Exposure: 0,
		Gamma:    2.2,
		Tier:     colorcore.High,
		Retina:   true,
	},
	"minimal": {
		Name:     "minimal",
		MaxSizes: []int{320, 640},
		Formats:  []string{"webp", "jpeg"},
		Quality:  78,
		Exposure: 0,
		Gamma:    2.2,
		Tier:     colorcore.Fast,
		Retina:   false,
	},
}

// Get returns a profile by name, falling back to web-preview (with its
// name field replaced) for an unrecognized one rather than erroring —
// a batch run over an unknown profile still does something reasonable.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["web-preview"]
	p.Name = name
	return p
}

// EffectiveSizes returns every MaxSize that doesn't upscale the
// source, plus its retina (2x) companion when Retina is set and the
// doubled size still fits, deduplicated and in increasing priority.
func (p Profile) EffectiveSizes(sourceLongEdge int) []int {
	seen := map[int]bool{}
	var result []int

	for _, s := range p.MaxSizes {
		if s > sourceLongEdge {
			continue
		}
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
		if p.Retina {
			s2 := s * 2
			if s2 <= sourceLongEdge && !seen[s2] {
				seen[s2] = true
				result = append(result, s2)
			}
		}
	}

	if len(result) == 0 && sourceLongEdge > 0 {
		result = append(result, sourceLongEdge)
	}
	return result
}
