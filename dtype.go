package scitex

import "math"

// DType identifies the numeric element type of tensor data. It drives
// both the normalization math and the storage format choice.
type DType uint32

// Element types.
const (
	// DTypeUnknown is the zero value, reported before any data is seen.
	DTypeUnknown DType = iota

	// DTypeUint8 is an 8-bit unsigned integer.
	DTypeUint8

	// DTypeInt8 is an 8-bit signed integer.
	DTypeInt8

	// DTypeUint16 is a 16-bit unsigned integer.
	DTypeUint16

	// DTypeInt16 is a 16-bit signed integer.
	DTypeInt16

	// DTypeUint32 is a 32-bit unsigned integer.
	DTypeUint32

	// DTypeInt32 is a 32-bit signed integer.
	DTypeInt32

	// DTypeFloat32 is a 32-bit floating point number.
	DTypeFloat32

	// DTypeFloat64 is a 64-bit floating point number.
	DTypeFloat64
)

var dtypeNames = [...]string{
	DTypeUnknown: "unknown",
	DTypeUint8:   "uint8",
	DTypeInt8:    "int8",
	DTypeUint16:  "uint16",
	DTypeInt16:   "int16",
	DTypeUint32:  "uint32",
	DTypeInt32:   "int32",
	DTypeFloat32: "float32",
	DTypeFloat64: "float64",
}

// String returns the Go-style name of the element type.
func (d DType) String() string {
	if int(d) >= len(dtypeNames) {
		return "unknown"
	}
	return dtypeNames[d]
}

// IsFloat reports whether the element type is floating point.
func (d DType) IsFloat() bool {
	return d == DTypeFloat32 || d == DTypeFloat64
}

// IsInteger reports whether the element type is an integer type.
func (d DType) IsInteger() bool {
	switch d {
	case DTypeUint8, DTypeInt8, DTypeUint16, DTypeInt16, DTypeUint32, DTypeInt32:
		return true
	}
	return false
}

// Size returns the element size in bytes, or 0 for DTypeUnknown.
func (d DType) Size() int {
	switch d {
	case DTypeUint8, DTypeInt8:
		return 1
	case DTypeUint16, DTypeInt16:
		return 2
	case DTypeUint32, DTypeInt32, DTypeFloat32:
		return 4
	case DTypeFloat64:
		return 8
	}
	return 0
}

// Limits returns the default display bounds for the element type:
// the full representable range for integer types, and the conventional
// pre-normalized (0, 1) range for floating point types. This is the
// fallback used whenever an "auto" range must be resolved without
// computing statistics.
func (d DType) Limits() (min, max float64) {
	switch d {
	case DTypeUint8:
		return 0, math.MaxUint8
	case DTypeInt8:
		return math.MinInt8, math.MaxInt8
	case DTypeUint16:
		return 0, math.MaxUint16
	case DTypeInt16:
		return math.MinInt16, math.MaxInt16
	case DTypeUint32:
		return 0, math.MaxUint32
	case DTypeInt32:
		return math.MinInt32, math.MaxInt32
	}
	return 0, 1
}
