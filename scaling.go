package scitex

import "fmt"

// Range is a display value range ("clim"): either the auto sentinel,
// meaning "compute from the next data snapshot", or a concrete pair of
// numeric bounds mapped to the bottom and top of the display scale.
// Once materialized from auto it is always a concrete pair.
type Range struct {
	min, max float64
	auto     bool
}

// AutoRange returns the auto sentinel range.
func AutoRange() Range { return Range{auto: true} }

// NewRange returns a concrete display range.
func NewRange(min, max float64) Range { return Range{min: min, max: max} }

// IsAuto reports whether the range is the auto sentinel.
func (r Range) IsAuto() bool { return r.auto }

// Bounds returns the numeric bounds. Only meaningful when IsAuto is false.
func (r Range) Bounds() (min, max float64) { return r.min, r.max }

// String returns "auto" or the bounds pair.
func (r Range) String() string {
	if r.auto {
		return "auto"
	}
	return fmt.Sprintf("(%g, %g)", r.min, r.max)
}

// ParseRange resolves a loosely typed display range specification into
// a Range. Accepted values are a Range, the string "auto", or a pair of
// numeric bounds as a two-element slice or array of float64, float32 or
// int. Anything else fails with ErrInvalidRangeSpec.
func ParseRange(spec any) (Range, error) {
	switch v := spec.(type) {
	case Range:
		return v, nil
	case string:
		if v != "auto" {
			return Range{}, fmt.Errorf("%w: got string %q", ErrInvalidRangeSpec, v)
		}
		return AutoRange(), nil
	case [2]float64:
		return NewRange(v[0], v[1]), nil
	case [2]float32:
		return NewRange(float64(v[0]), float64(v[1])), nil
	case [2]int:
		return NewRange(float64(v[0]), float64(v[1])), nil
	case []float64:
		if len(v) != 2 {
			return Range{}, fmt.Errorf("%w: got %d elements", ErrInvalidRangeSpec, len(v))
		}
		return NewRange(v[0], v[1]), nil
	case []float32:
		if len(v) != 2 {
			return Range{}, fmt.Errorf("%w: got %d elements", ErrInvalidRangeSpec, len(v))
		}
		return NewRange(float64(v[0]), float64(v[1])), nil
	case []int:
		if len(v) != 2 {
			return Range{}, fmt.Errorf("%w: got %d elements", ErrInvalidRangeSpec, len(v))
		}
		return NewRange(float64(v[0]), float64(v[1])), nil
	}
	return Range{}, fmt.Errorf("%w: got %T", ErrInvalidRangeSpec, spec)
}

type formatSpecKind uint8

const (
	formatSpecUnset formatSpecKind = iota
	formatSpecAuto
	formatSpecNamed
	formatSpecFromType
)

// FormatSpec is a storage format hint: the auto sentinel, a concrete
// format token, or an element type to look up in the format table.
type FormatSpec struct {
	kind   formatSpecKind
	format TextureFormat
	dtype  DType
}

// AutoFormat returns the auto format hint. It additionally grants the
// texture permission to renegotiate its storage format when later data
// arrives with a different element type.
func AutoFormat() FormatSpec { return FormatSpec{kind: formatSpecAuto} }

// NamedFormat returns a hint naming a concrete format token.
func NamedFormat(f TextureFormat) FormatSpec {
	return FormatSpec{kind: formatSpecNamed, format: f}
}

// FormatFromType returns a hint selecting the format mapped to an
// element type. Unlike AutoFormat it does not permit renegotiation.
func FormatFromType(d DType) FormatSpec {
	return FormatSpec{kind: formatSpecFromType, dtype: d}
}

// ParseFormat resolves a loosely typed format hint into a FormatSpec.
// Accepted values are a FormatSpec, the string "auto", a GL-style token
// string ("r32f"), a TextureFormat, or a DType.
func ParseFormat(spec any) (FormatSpec, error) {
	switch v := spec.(type) {
	case FormatSpec:
		return v, nil
	case string:
		if v == "auto" {
			return AutoFormat(), nil
		}
		f, err := ParseTextureFormat(v)
		if err != nil {
			return FormatSpec{}, err
		}
		return NamedFormat(f), nil
	case TextureFormat:
		return NamedFormat(v), nil
	case DType:
		return FormatFromType(v), nil
	}
	return FormatSpec{}, fmt.Errorf("%w: format hint %T", ErrUnsupportedFormat, spec)
}

// TextureScaler is the strategy side of a scaled texture: it owns the
// display range state and decides, per upload, how data reaches the
// underlying resource. CPUScaler and GPUScaler implement it.
type TextureScaler interface {
	// Clim returns the current display range.
	Clim() Range

	// SetClim updates the display range from a loose specification and
	// reports whether a texture re-upload is required for the new range
	// to take effect.
	SetClim(spec any) (bool, error)

	// DataType returns the element type of the most recently uploaded
	// data, or DTypeUnknown before any upload.
	DataType() DType

	// ClimNormalized re-expresses the current display range in the space
	// the shader samples.
	ClimNormalized() (min, max float64, err error)

	// IsNormalized reports whether the in-shader representation of the
	// texture is fixed-point normalized.
	IsNormalized() bool

	// ScaleAndSetData uploads new data, scaling or renegotiating the
	// storage format as the strategy requires.
	ScaleAndSetData(data *Tensor, offset []int, copy bool) error

	// CheckData reports whether data would be rejected if uploaded,
	// without mutating any state.
	CheckData(data *Tensor) error
}

// scalerCore is the format-agnostic bookkeeping shared by both scaling
// strategies: the display range, the element type of the most recent
// upload, and the texture geometry needed to interpret shapes.
type scalerCore struct {
	res    TextureResource
	rank   int
	clim   Range
	dtype  DType
	single bool // luminance hint: force single channel
}

// Clim returns the current display range.
func (s *scalerCore) Clim() Range { return s.clim }

// DataType returns the element type of the most recently uploaded data.
func (s *scalerCore) DataType() DType { return s.dtype }

// SetClim updates the display range. A re-upload is reported when the
// range was or becomes auto, since in both cases the displayed result
// depends on the next data snapshot.
func (s *scalerCore) SetClim(spec any) (bool, error) {
	r, err := ParseRange(spec)
	if err != nil {
		return false, err
	}
	need := r.IsAuto() || s.clim.IsAuto()
	s.clim = r
	return need, nil
}

// defaultClims returns the fallback display range for an element type:
// (0, 1) for floating point data, assumed pre-normalized, and the full
// representable range for integer data.
func (s *scalerCore) defaultClims(d DType) Range {
	lo, hi := d.Limits()
	return NewRange(lo, hi)
}

// IsNormalized reports whether the resource's current format is
// fixed-point normalized. True while no format is known.
func (s *scalerCore) IsNormalized() bool {
	return s.res.Format().IsNormalized()
}

// ClimNormalized re-expresses the display range in shader space:
// identity for native-matched formats, else linearly remapped over the
// representable range of the uploaded element type.
func (s *scalerCore) ClimNormalized() (min, max float64, err error) {
	if s.clim.IsAuto() {
		return 0, 0, ErrRangeUnresolved
	}
	lo, hi := s.clim.Bounds()
	if !s.IsNormalized() || !s.dtype.IsInteger() {
		return lo, hi, nil
	}
	dmin, dmax := s.dtype.Limits()
	span := dmax - dmin
	return (lo - dmin) / span, (hi - dmin) / span, nil
}

// numChannels derives the channel count for data: 1 under the luminance
// hint, the trailing-axis length for rank+1 shaped data, and 4 when no
// data is available.
func (s *scalerCore) numChannels(data *Tensor) int {
	if s.single {
		return 1
	}
	if data != nil {
		return data.NumChannels(s.rank)
	}
	return 4
}

// repArray builds a small placeholder tensor with the element type and
// channel count real data of this shape would have, sized independently
// of any real extent. It exists purely to probe format decisions and
// must never be mistaken for content.
func (s *scalerCore) repArray(data *Tensor) *Tensor {
	dtype := DTypeFloat32
	if data != nil {
		dtype = data.DType()
	}
	shape := make([]int, s.rank, s.rank+1)
	for i := range shape {
		shape[i] = 10
	}
	shape = append(shape, s.numChannels(data))
	rep, _ := Zeros(shape, dtype)
	return rep
}
