package scitex

import (
	"fmt"
	"slices"
)

// CPUScaler normalizes data on the host before it reaches the texture.
//
// The storage format stays in the fixed-point normalized family
// regardless of the input element type: every single-channel upload is
// linearly rescaled into [0, 1] float32 samples on the CPU. Pre-scaling
// on the host is what makes arbitrary numeric input viable on backends
// whose texture storage is limited to normalized integer formats.
//
// The scaler records the range baked into the last rescale (the data
// limits) so that later clim changes falling inside it can be honored
// by the shader alone, without re-uploading.
type CPUScaler struct {
	scalerCore

	// dataLimits is the range used for the most recent host-side rescale.
	dataLimits Range
	hasLimits  bool
}

// NewCPUScaler creates a CPU-scaling strategy over a resource of the
// given spatial rank, with an auto display range.
func NewCPUScaler(res TextureResource, rank int) *CPUScaler {
	return &CPUScaler{scalerCore: scalerCore{res: res, rank: rank, clim: AutoRange()}}
}

// DataLimits returns the range baked into the last host-side rescale.
// The second result is false before the first single-channel upload.
func (s *CPUScaler) DataLimits() (Range, bool) { return s.dataLimits, s.hasLimits }

func (s *CPUScaler) climOutsideDataLimits(lo, hi float64) bool {
	if !s.hasLimits {
		return false
	}
	dlo, dhi := s.dataLimits.Bounds()
	return lo < dlo || hi > dhi
}

// SetClim updates the display range. Beyond the shared rules, a
// re-upload is reported when the new bounds fall outside the data
// limits baked into the last rescale: widening the display window past
// what was uploaded needs a fresh rescale, while a window inside the
// limits is handled by the shader alone.
func (s *CPUScaler) SetClim(spec any) (bool, error) {
	r, err := ParseRange(spec)
	if err != nil {
		return false, err
	}
	need := r.IsAuto() || s.clim.IsAuto()
	if !r.IsAuto() {
		if lo, hi := r.Bounds(); s.climOutsideDataLimits(lo, hi) {
			need = true
		}
	}
	s.clim = r
	return need, nil
}

// ClimNormalized re-expresses the display range in the [0, 1] space the
// last rescale mapped the data limits onto. A clim equal to the data
// limits therefore always normalizes to (0, 1).
func (s *CPUScaler) ClimNormalized() (min, max float64, err error) {
	if s.clim.IsAuto() || !s.hasLimits {
		return 0, 0, ErrRangeUnresolved
	}
	lo, hi := s.clim.Bounds()
	dlo, dhi := s.dataLimits.Bounds()
	span := dhi - dlo
	if span == 0 {
		// Degenerate limits follow the degenerate-rescale rule.
		if dlo != 0 {
			return lo / dlo, hi / dlo, nil
		}
		return lo, hi, nil
	}
	return (lo - dlo) / span, (hi - dlo) / span, nil
}

// ScaleAndSetData resolves the display range against the new data,
// rescales single-channel input on the host and uploads the result.
//
// An auto range materializes as the data's (min, max) for
// single-channel input and as the element type's default range for
// multi-channel input, which is assumed pre-normalized and never
// rescaled.
func (s *CPUScaler) ScaleAndSetData(data *Tensor, offset []int, copy bool) error {
	if data == nil {
		return fmt.Errorf("scitex: nil data upload")
	}
	s.dtype = data.DType()

	clim := s.clim
	if data.IsSingleChannel(s.rank) {
		if clim.IsAuto() {
			clim = NewRange(data.MinMax())
		}
		scaled, err := rescaleToFloat32(data, clim, copy)
		if err != nil {
			return err
		}
		Logger().Debug("scitex: rescaled data on host",
			"clim", clim.String(), "dtype", s.dtype.String())
		data = scaled
		s.dataLimits = clim
	} else {
		s.dataLimits = s.defaultClims(data.DType())
		if clim.IsAuto() {
			clim = s.dataLimits
		}
	}
	s.hasLimits = true
	s.clim = clim
	return s.res.SetData(data, offset, copy)
}

// CheckData reports whether data would be rejected if uploaded. The CPU
// strategy accepts any element type, so it never fails.
func (s *CPUScaler) CheckData(*Tensor) error { return nil }

// rescaleToFloat32 converts data into float32 samples linearly mapped
// so that clim's bounds land on 0 and 1. When the bounds coincide the
// values are divided by the common bound instead, or left untouched
// when that bound is zero. Without a copy the input must already be
// floating point; float64 input is scaled in place and then downcast
// into a fresh float32 buffer.
func rescaleToFloat32(data *Tensor, clim Range, copyBuf bool) (*Tensor, error) {
	lo, hi := clim.Bounds()
	if copyBuf {
		vals := data.Float32()
		if data.DType() == DTypeFloat32 {
			vals = slices.Clone(vals)
		}
		applyScale32(vals, float32(lo), float32(hi))
		return NewTensor(data.Shape(), vals)
	}
	switch vals := data.data.(type) {
	case []float32:
		applyScale32(vals, float32(lo), float32(hi))
		return data, nil
	case []float64:
		applyScale64(vals, lo, hi)
		return NewTensor(data.Shape(), toFloat32(vals))
	}
	return nil, fmt.Errorf("%w: %s data", ErrInvalidOperation, data.DType())
}

func applyScale32(vals []float32, cmin, cmax float32) {
	if cmin == cmax {
		if cmin == 0 {
			return
		}
		for i := range vals {
			vals[i] /= cmin
		}
		return
	}
	span := cmax - cmin
	for i := range vals {
		vals[i] = (vals[i] - cmin) / span
	}
}

func applyScale64(vals []float64, cmin, cmax float64) {
	if cmin == cmax {
		if cmin == 0 {
			return
		}
		for i := range vals {
			vals[i] /= cmin
		}
		return
	}
	span := cmax - cmin
	for i := range vals {
		vals[i] = (vals[i] - cmin) / span
	}
}

// fixedNormalizedFormat returns the 8-bit fixed-normalized format the
// CPU strategy allocates for the given channel count.
func fixedNormalizedFormat(channels int) (TextureFormat, error) {
	return TextureFormatR8.WithChannels(channels)
}
