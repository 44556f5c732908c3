// Package config holds the CLI/batch boundary types: the place where a
// free-form string (a flag value, a JSON field) becomes one of
// colorcore's finite tagged variants, and where struct-tag validation
// catches a malformed combination before it reaches the core.
package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/sugi-cho/EXR-Tool/internal/colorcore"
)

var validate = validator.New()

// GenerateConfig is the fully-parsed, struct-tag-validated input to a
// lutgen run. The lutgen subcommand copies its flags into one of these
// before any colorcore call is made.
type GenerateConfig struct {
	SrcPrimaries string `validate:"required,oneof=srgb-d65 rec2020-d65 acescg-d60 aces2065-d60"`
	SrcTF        string `validate:"required,oneof=linear srgb gamma2.2 gamma2.4"`
	DstPrimaries string `validate:"required,oneof=srgb-d65 rec2020-d65 acescg-d60 aces2065-d60"`
	DstTF        string `validate:"required,oneof=linear srgb gamma2.2 gamma2.4"`
	CubeSize     int    `validate:"required,min=2,max=129"`
	ShaperSize   int    `validate:"min=0,max=65536"`
	Clip         string `validate:"required,oneof=clip noclip"`
}

// Validate runs struct-tag validation and returns a single aggregated
// error describing every violated constraint, instead of surfacing them
// one CLI run at a time.
func (c GenerateConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &colorcore.InvalidInputError{Msg: err.Error()}
	}
	return nil
}

// ToParams resolves the validated string fields into colorcore's enums.
// Callers must call Validate first; ToParams assumes the oneof
// constraints already hold and only checks for internal logic errors.
func (c GenerateConfig) ToParams() (colorcore.GenerateParams, error) {
	srcP, err := colorcore.ParsePrimaries(c.SrcPrimaries)
	if err != nil {
		return colorcore.GenerateParams{}, err
	}
	srcTF, err := colorcore.ParseTransferFn(c.SrcTF)
	if err != nil {
		return colorcore.GenerateParams{}, err
	}
	dstP, err := colorcore.ParsePrimaries(c.DstPrimaries)
	if err != nil {
		return colorcore.GenerateParams{}, err
	}
	dstTF, err := colorcore.ParseTransferFn(c.DstTF)
	if err != nil {
		return colorcore.GenerateParams{}, err
	}
	clip, err := colorcore.ParseClipMode(c.Clip)
	if err != nil {
		return colorcore.GenerateParams{}, err
	}

	return colorcore.GenerateParams{
		SrcPrimaries: srcP,
		SrcTF:        srcTF,
		DstPrimaries: dstP,
		DstTF:        dstTF,
		CubeSize:     c.CubeSize,
		ShaperSize:   c.ShaperSize,
		Clip:         clip,
	}, nil
}

// PreviewConfig is the validated input to a preview or histogram run.
type PreviewConfig struct {
	MaxSize  int     `validate:"required,min=1,max=16384"`
	Exposure float32 `validate:"min=-32,max=32"`
	Gamma    float32 `validate:"min=0,max=16"`
	Quality  string  `validate:"required,oneof=fast high"`
}

func (c PreviewConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &colorcore.InvalidInputError{Msg: err.Error()}
	}
	return nil
}

func (c PreviewConfig) ToParams() (colorcore.PreviewParams, error) {
	q, err := colorcore.ParseQuality(c.Quality)
	if err != nil {
		return colorcore.PreviewParams{}, err
	}
	return colorcore.PreviewParams{
		MaxSize:  c.MaxSize,
		Exposure: c.Exposure,
		Gamma:    c.Gamma,
		Quality:  q,
	}, nil
}
