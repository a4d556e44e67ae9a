package scitex

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
	xdraw "golang.org/x/image/draw"
)

// Scalar is the set of element types a Tensor can carry.
type Scalar interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | float32 | float64
}

// Tensor is an n-dimensional numeric array: a shape, an element type
// and a flat backing slice in row-major order. It is the unit of data
// exchanged with texture resources.
//
// A tensor destined for a texture of spatial rank N has either N axes
// (single channel) or N+1 axes, with the trailing axis holding the
// channel count (e.g. shape (H, W, 3) for RGB on a 2-D texture).
type Tensor struct {
	shape []int
	dtype DType
	data  any
}

// NewTensor creates a tensor from a shape and a flat backing slice.
// The slice is used directly without copying; its length must equal the
// product of the shape dimensions, and every dimension must be positive.
func NewTensor[T Scalar](shape []int, data []T) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("scitex: invalid tensor dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("scitex: shape %v needs %d elements, got %d", shape, n, len(data))
	}
	var zero T
	var dt DType
	switch any(zero).(type) {
	case uint8:
		dt = DTypeUint8
	case int8:
		dt = DTypeInt8
	case uint16:
		dt = DTypeUint16
	case int16:
		dt = DTypeInt16
	case uint32:
		dt = DTypeUint32
	case int32:
		dt = DTypeInt32
	case float32:
		dt = DTypeFloat32
	case float64:
		dt = DTypeFloat64
	}
	return &Tensor{shape: slices.Clone(shape), dtype: dt, data: data}, nil
}

// Zeros creates a zero-filled tensor of the given shape and element type.
func Zeros(shape []int, dtype DType) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("scitex: invalid tensor dimension %d", d)
		}
		n *= d
	}
	switch dtype {
	case DTypeUint8:
		return NewTensor(shape, make([]uint8, n))
	case DTypeInt8:
		return NewTensor(shape, make([]int8, n))
	case DTypeUint16:
		return NewTensor(shape, make([]uint16, n))
	case DTypeInt16:
		return NewTensor(shape, make([]int16, n))
	case DTypeUint32:
		return NewTensor(shape, make([]uint32, n))
	case DTypeInt32:
		return NewTensor(shape, make([]int32, n))
	case DTypeFloat32:
		return NewTensor(shape, make([]float32, n))
	case DTypeFloat64:
		return NewTensor(shape, make([]float64, n))
	}
	return nil, fmt.Errorf("scitex: cannot allocate tensor of type %s", dtype)
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int { return slices.Clone(t.shape) }

// Rank returns the number of axes.
func (t *Tensor) Rank() int { return len(t.shape) }

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	n := 1
	for _, d := range t.shape {
		n *= d
	}
	return n
}

// DType returns the element type.
func (t *Tensor) DType() DType { return t.dtype }

// Data returns the flat backing slice as one of the Scalar slice types.
func (t *Tensor) Data() any { return t.data }

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{shape: slices.Clone(t.shape), dtype: t.dtype}
	switch s := t.data.(type) {
	case []uint8:
		c.data = slices.Clone(s)
	case []int8:
		c.data = slices.Clone(s)
	case []uint16:
		c.data = slices.Clone(s)
	case []int16:
		c.data = slices.Clone(s)
	case []uint32:
		c.data = slices.Clone(s)
	case []int32:
		c.data = slices.Clone(s)
	case []float32:
		c.data = slices.Clone(s)
	case []float64:
		c.data = slices.Clone(s)
	}
	return c
}

// NumChannels returns the channel count of the tensor relative to a
// texture of the given spatial rank: the trailing axis length when the
// tensor has one axis more than the texture, 1 otherwise.
func (t *Tensor) NumChannels(rank int) int {
	if len(t.shape) == rank+1 {
		return t.shape[len(t.shape)-1]
	}
	return 1
}

// IsSingleChannel reports whether the tensor carries one sample per
// texel for a texture of the given spatial rank: either the tensor is
// rank-matched, or its trailing channel axis has length 1.
func (t *Tensor) IsSingleChannel(rank int) bool {
	return len(t.shape) == rank || (len(t.shape) > rank && t.shape[rank] == 1)
}

// MinMax returns the smallest and largest element values. NaN values in
// floating point tensors are ignored.
func (t *Tensor) MinMax() (min, max float64) {
	switch s := t.data.(type) {
	case []float32:
		lo, hi := math32.Inf(1), math32.Inf(-1)
		for _, v := range s {
			if math32.IsNaN(v) {
				continue
			}
			lo = math32.Min(lo, v)
			hi = math32.Max(hi, v)
		}
		return float64(lo), float64(hi)
	case []float64:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range s {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		return lo, hi
	case []uint8:
		return minMax(s)
	case []int8:
		return minMax(s)
	case []uint16:
		return minMax(s)
	case []int16:
		return minMax(s)
	case []uint32:
		return minMax(s)
	case []int32:
		return minMax(s)
	}
	return 0, 0
}

func minMax[T constraints.Integer](s []T) (min, max float64) {
	lo, hi := s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return float64(lo), float64(hi)
}

// Float32 returns the tensor's elements as float32 values. For float32
// tensors the backing slice is returned directly; all other element
// types are converted into a fresh slice.
func (t *Tensor) Float32() []float32 {
	switch s := t.data.(type) {
	case []float32:
		return s
	case []uint8:
		return toFloat32(s)
	case []int8:
		return toFloat32(s)
	case []uint16:
		return toFloat32(s)
	case []int16:
		return toFloat32(s)
	case []uint32:
		return toFloat32(s)
	case []int32:
		return toFloat32(s)
	case []float64:
		return toFloat32(s)
	}
	return nil
}

func toFloat32[T Scalar](s []T) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

// FromImage converts an image into an RGBA tensor of shape
// (height, width, 4) with uint8 elements.
func FromImage(img image.Image) *Tensor {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	t, _ := NewTensor([]int{b.Dy(), b.Dx(), 4}, dst.Pix)
	return t
}

// FromImageResampled converts an image into an RGBA tensor of shape
// (height, width, 4), resampling with a bilinear kernel when the
// requested size differs from the image bounds.
func FromImageResampled(img image.Image, width, height int) (*Tensor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scitex: invalid resample size %dx%d", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return NewTensor([]int{height, width, 4}, dst.Pix)
}
