package scitex

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
)

// TextureResource is the narrow interface scitex consumes from the
// underlying GPU texture object. Real backends wrap their texture
// handles behind these four methods; MemTexture provides a host-memory
// implementation for tests and headless use.
//
// A resource is owned exclusively by its enclosing texture; scitex
// never shares one resource between textures. Resize is destructive:
// prior contents are not guaranteed to be preserved.
type TextureResource interface {
	// Allocate creates storage for the given shape and internal format.
	Allocate(shape []int, format TextureFormat) error

	// Resize reallocates storage. The format may differ from the current
	// one; prior contents are not preserved.
	Resize(shape []int, format TextureFormat) error

	// SetData transfers a host buffer into existing storage. A nil offset
	// replaces the whole content (reallocating if the spatial shape
	// changed); a non-nil offset writes a sub-region. When copy is false
	// the resource may alias the caller's buffer instead of duplicating
	// it, which is only valid if the buffer is not mutated during the
	// transfer.
	SetData(data *Tensor, offset []int, copy bool) error

	// Format returns the active internal format token.
	Format() TextureFormat
}

// MemTexture is a TextureResource backed by host memory. It performs
// the same shape/format bookkeeping a GPU texture would, including the
// float64 to float32 downcast applied at upload time, and keeps the
// uploaded samples readable for inspection.
type MemTexture struct {
	dim      gputypes.TextureDimension
	shape    []int
	format   TextureFormat
	store    *Tensor
	warned64 bool
}

// NewMemTexture creates an unallocated host-memory texture of the given
// dimensionality.
func NewMemTexture(dim gputypes.TextureDimension) *MemTexture {
	return &MemTexture{dim: dim}
}

// dimRank returns the spatial rank of a texture dimension.
func dimRank(dim gputypes.TextureDimension) int {
	switch dim {
	case gputypes.TextureDimension1D:
		return 1
	case gputypes.TextureDimension3D:
		return 3
	}
	return 2
}

// Dimension returns the texture dimensionality.
func (m *MemTexture) Dimension() gputypes.TextureDimension { return m.dim }

// Format returns the active internal format token.
func (m *MemTexture) Format() TextureFormat { return m.format }

// Shape returns a copy of the allocated shape, including a trailing
// channel axis when one was allocated.
func (m *MemTexture) Shape() []int { return slices.Clone(m.shape) }

// Data returns the most recently uploaded samples, or nil if nothing
// has been uploaded since the last (re)allocation.
func (m *MemTexture) Data() *Tensor { return m.store }

// Extent returns the spatial size of the allocated storage.
func (m *MemTexture) Extent() gputypes.Extent3D {
	spatial := m.shape
	if len(spatial) > dimRank(m.dim) {
		spatial = spatial[:len(spatial)-1]
	}
	switch len(spatial) {
	case 1:
		return gputypes.Extent3D{Width: uint32(spatial[0]), Height: 1, DepthOrArrayLayers: 1}
	case 2:
		return gputypes.Extent3D{Width: uint32(spatial[1]), Height: uint32(spatial[0]), DepthOrArrayLayers: 1}
	case 3:
		return gputypes.Extent3D{Width: uint32(spatial[2]), Height: uint32(spatial[1]), DepthOrArrayLayers: uint32(spatial[0])}
	}
	return gputypes.Extent3D{}
}

func (m *MemTexture) checkShape(shape []int) error {
	r := dimRank(m.dim)
	if len(shape) != r && len(shape) != r+1 {
		return fmt.Errorf("scitex: shape %v does not fit a %d-d texture", shape, r)
	}
	for _, d := range shape {
		if d <= 0 {
			return fmt.Errorf("scitex: invalid texture dimension %d", d)
		}
	}
	return nil
}

// Allocate creates storage for the given shape and internal format.
func (m *MemTexture) Allocate(shape []int, format TextureFormat) error {
	if err := m.checkShape(shape); err != nil {
		return err
	}
	m.shape = slices.Clone(shape)
	m.format = format
	m.store = nil
	return nil
}

// Resize reallocates storage, dropping prior contents.
func (m *MemTexture) Resize(shape []int, format TextureFormat) error {
	if err := m.checkShape(shape); err != nil {
		return err
	}
	Logger().Debug("scitex: resizing texture storage",
		"shape", shape, "format", format.String())
	m.shape = slices.Clone(shape)
	m.format = format
	m.store = nil
	return nil
}

// SetData transfers a host buffer into the texture's storage.
func (m *MemTexture) SetData(data *Tensor, offset []int, copy bool) error {
	if data == nil {
		return fmt.Errorf("scitex: nil data upload")
	}
	if err := m.checkShape(data.shape); err != nil {
		return err
	}
	if data.DType() == DTypeFloat64 {
		if !m.warned64 {
			Logger().Warn("scitex: float64 samples downcast to float32 for texture storage")
			m.warned64 = true
		}
		t, err := NewTensor(data.shape, data.Float32())
		if err != nil {
			return err
		}
		data = t
	} else if copy {
		data = data.Clone()
	}

	if offset == nil {
		m.shape = slices.Clone(data.shape)
		m.store = data
		return nil
	}
	return m.setRegion(data, offset)
}

// setRegion writes data into a sub-region of the existing storage.
func (m *MemTexture) setRegion(data *Tensor, offset []int) error {
	if m.store == nil {
		z, err := Zeros(m.shape, data.DType())
		if err != nil {
			return err
		}
		m.store = z
	}
	if data.DType() != m.store.DType() {
		return fmt.Errorf("scitex: region upload of %s data into %s storage", data.DType(), m.store.DType())
	}
	if len(data.shape) != len(m.store.shape) {
		return fmt.Errorf("scitex: region shape %v does not match storage shape %v", data.shape, m.store.shape)
	}
	off := slices.Clone(offset)
	for len(off) < len(m.store.shape) {
		off = append(off, 0)
	}
	for i := range m.store.shape {
		if off[i] < 0 || off[i]+data.shape[i] > m.store.shape[i] {
			return fmt.Errorf("scitex: region %v+%v out of bounds for shape %v", offset, data.shape, m.store.shape)
		}
	}
	switch dst := m.store.data.(type) {
	case []uint8:
		regionCopy(dst, m.store.shape, data.data.([]uint8), data.shape, off)
	case []int8:
		regionCopy(dst, m.store.shape, data.data.([]int8), data.shape, off)
	case []uint16:
		regionCopy(dst, m.store.shape, data.data.([]uint16), data.shape, off)
	case []int16:
		regionCopy(dst, m.store.shape, data.data.([]int16), data.shape, off)
	case []uint32:
		regionCopy(dst, m.store.shape, data.data.([]uint32), data.shape, off)
	case []int32:
		regionCopy(dst, m.store.shape, data.data.([]int32), data.shape, off)
	case []float32:
		regionCopy(dst, m.store.shape, data.data.([]float32), data.shape, off)
	case []float64:
		regionCopy(dst, m.store.shape, data.data.([]float64), data.shape, off)
	}
	return nil
}

// regionCopy copies a row-major block of srcShape elements into dst at
// the given per-axis offset. Bounds are validated by the caller.
func regionCopy[T Scalar](dst []T, dstShape []int, src []T, srcShape, offset []int) {
	dstStrides := rowMajorStrides(dstShape)
	srcStrides := rowMajorStrides(srcShape)

	var walk func(axis, dstBase, srcBase int)
	walk = func(axis, dstBase, srcBase int) {
		if axis == len(srcShape)-1 {
			copy(dst[dstBase:dstBase+srcShape[axis]], src[srcBase:srcBase+srcShape[axis]])
			return
		}
		for i := 0; i < srcShape[axis]; i++ {
			walk(axis+1, dstBase+i*dstStrides[axis], srcBase+i*srcStrides[axis])
		}
	}
	base := 0
	for i, o := range offset {
		base += o * dstStrides[i]
	}
	walk(0, base, 0)
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}
