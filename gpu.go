package scitex

import "fmt"

// GPUScaler keeps texture storage as close to the data's native element
// type as possible and never rewrites host memory: all scaling is
// deferred to the shader. 32-bit floats on the CPU are 32-bit floats on
// the GPU, which avoids copies and preserves the most precision for the
// final visualization.
//
// The storage format is resolved from a hint at construction. The
// "auto" hint both derives the format from the first data seen and
// grants permission to renegotiate it when later data arrives with a
// different element type; any other hint locks the format, and uploads
// implying a change are rejected.
type GPUScaler struct {
	scalerCore

	// autoFormat records, once at construction, whether the caller
	// granted permission to change the storage format on later uploads.
	autoFormat bool
}

// NewGPUScaler creates a GPU-scaling strategy over a resource of the
// given spatial rank, with an auto display range.
func NewGPUScaler(res TextureResource, rank int) *GPUScaler {
	return &GPUScaler{scalerCore: scalerCore{res: res, rank: rank, clim: AutoRange()}}
}

// AutoFormatEnabled reports whether automatic format renegotiation was
// granted at construction.
func (s *GPUScaler) AutoFormatEnabled() bool { return s.autoFormat }

// ResolveFormat turns a format hint into a concrete storage format for
// the given data, expanding the single-channel base to the data's
// channel count.
//
// With the auto hint and no data there is no way to make a format
// decision yet: ResolveFormat warns and returns
// TextureFormatUndefined with a nil error, leaving the caller free to
// fall back to CPU scaling.
func (s *GPUScaler) ResolveFormat(spec FormatSpec, data *Tensor) (TextureFormat, error) {
	var base TextureFormat
	switch spec.kind {
	case formatSpecAuto:
		if data == nil {
			Logger().Warn("scitex: format hint is \"auto\" but no data provided; falling back to CPU scaling")
			return TextureFormatUndefined, nil
		}
		f, err := formatForDType(data.DType())
		if err != nil {
			return TextureFormatUndefined, err
		}
		base = f
		s.autoFormat = true
	case formatSpecNamed:
		if spec.format == TextureFormatUndefined {
			return TextureFormatUndefined, fmt.Errorf("%w: undefined format hint", ErrUnsupportedFormat)
		}
		base = spec.format
	case formatSpecFromType:
		f, err := formatForDType(spec.dtype)
		if err != nil {
			return TextureFormatUndefined, err
		}
		base = f
	default:
		return TextureFormatUndefined, fmt.Errorf("%w: empty format hint", ErrUnsupportedFormat)
	}
	f, err := base.WithChannels(s.numChannels(data))
	if err != nil {
		return TextureFormatUndefined, err
	}
	Logger().Debug("scitex: resolved storage format",
		"format", f.String(), "auto", s.autoFormat)
	return f, nil
}

// computeClim resolves an auto display range against new data: the
// data's (min, max) for single-channel input, the element type's
// default range for multi-channel input, which is assumed pre-scaled.
// A concrete range passes through unchanged.
func (s *GPUScaler) computeClim(data *Tensor) Range {
	clim := s.clim
	if data.IsSingleChannel(s.rank) {
		if clim.IsAuto() {
			clim = NewRange(data.MinMax())
		}
	} else if clim.IsAuto() {
		clim = s.defaultClims(data.DType())
	}
	return clim
}

// targetFormat resolves the storage format data would require, probing
// shape via a representative array rather than the data's real extent.
func (s *GPUScaler) targetFormat(data *Tensor) (TextureFormat, error) {
	rep := s.repArray(data)
	base, err := formatForDType(data.DType())
	if err != nil {
		return TextureFormatUndefined, err
	}
	shape := rep.Shape()
	return base.WithChannels(shape[len(shape)-1])
}

// FormatWouldChange reports whether uploading data would require a
// storage format different from the resource's current one.
func (s *GPUScaler) FormatWouldChange(data *Tensor) (bool, error) {
	f, err := s.targetFormat(data)
	if err != nil {
		return false, err
	}
	return f != s.res.Format(), nil
}

// CheckData is the synchronous pre-upload guard: it fails with
// ErrFormatMismatch when data implies a format change that automatic
// format selection was never granted for. Call it before uploads whose
// failure would be expensive to unwind; it mutates nothing.
func (s *GPUScaler) CheckData(data *Tensor) error {
	f, err := s.targetFormat(data)
	if err != nil {
		return err
	}
	if f != s.res.Format() && !s.autoFormat {
		return fmt.Errorf("%w: %s data needs %s, texture holds %s",
			ErrFormatMismatch, data.DType(), f, s.res.Format())
	}
	return nil
}

// reconcileFormat renegotiates the resource's format for incoming data.
// A required change resizes the resource when renegotiation was granted
// (destructive: prior contents are dropped) and fails with
// ErrFormatLocked when it was not. The check runs before any
// reallocation, so a rejected upload leaves GPU state untouched.
func (s *GPUScaler) reconcileFormat(data *Tensor) error {
	f, err := s.targetFormat(data)
	if err != nil {
		return err
	}
	if f == s.res.Format() {
		return nil
	}
	if !s.autoFormat {
		return fmt.Errorf("%w: %s required", ErrFormatLocked, f)
	}
	return s.res.Resize(data.Shape(), f)
}

// ScaleAndSetData renegotiates the storage format if needed, records
// the element type, resolves the display range and forwards the data
// unmodified to the resource. No host-side numeric transformation ever
// occurs on this path.
func (s *GPUScaler) ScaleAndSetData(data *Tensor, offset []int, copy bool) error {
	if data == nil {
		return fmt.Errorf("scitex: nil data upload")
	}
	if err := s.reconcileFormat(data); err != nil {
		return err
	}
	s.dtype = data.DType()
	s.clim = s.computeClim(data)
	return s.res.SetData(data, offset, copy)
}
