package scitex

import "fmt"

// TextureFormat identifies a GPU-visible internal storage representation:
// channel count, bit width and numeric interpretation. Tokens follow the
// GL naming convention, where a trailing "f" (float), "i" (integer) or
// "ui" (unsigned integer) marks a native-matched format and a bare token
// marks a fixed-normalized one.
//
// Formats are grouped in families of four channel-count variants, which
// Channels and WithChannels rely on.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatUndefined means no format decision has been made yet.
	TextureFormatUndefined TextureFormat = iota

	// TextureFormatR8 is 8-bit single channel, fixed-point normalized.
	TextureFormatR8

	// TextureFormatRG8 is 8-bit two channel, fixed-point normalized.
	TextureFormatRG8

	// TextureFormatRGB8 is 8-bit RGB, fixed-point normalized.
	TextureFormatRGB8

	// TextureFormatRGBA8 is 8-bit RGBA, fixed-point normalized.
	TextureFormatRGBA8

	// TextureFormatR16 is 16-bit single channel, fixed-point normalized.
	TextureFormatR16

	// TextureFormatRG16 is 16-bit two channel, fixed-point normalized.
	TextureFormatRG16

	// TextureFormatRGB16 is 16-bit RGB, fixed-point normalized.
	TextureFormatRGB16

	// TextureFormatRGBA16 is 16-bit RGBA, fixed-point normalized.
	TextureFormatRGBA16

	// TextureFormatR32F is 32-bit single channel, floating point.
	TextureFormatR32F

	// TextureFormatRG32F is 32-bit two channel, floating point.
	TextureFormatRG32F

	// TextureFormatRGB32F is 32-bit RGB, floating point.
	TextureFormatRGB32F

	// TextureFormatRGBA32F is 32-bit RGBA, floating point.
	TextureFormatRGBA32F
)

var formatTokens = [...]string{
	TextureFormatUndefined: "undefined",
	TextureFormatR8:        "r8",
	TextureFormatRG8:       "rg8",
	TextureFormatRGB8:      "rgb8",
	TextureFormatRGBA8:     "rgba8",
	TextureFormatR16:       "r16",
	TextureFormatRG16:      "rg16",
	TextureFormatRGB16:     "rgb16",
	TextureFormatRGBA16:    "rgba16",
	TextureFormatR32F:      "r32f",
	TextureFormatRG32F:     "rg32f",
	TextureFormatRGB32F:    "rgb32f",
	TextureFormatRGBA32F:   "rgba32f",
}

// String returns the GL-style format token, e.g. "r32f".
func (f TextureFormat) String() string {
	if int(f) >= len(formatTokens) {
		return "undefined"
	}
	return formatTokens[f]
}

// IsNormalized reports whether the GPU interprets stored values as
// fixed-point fractions in [0, 1]. Tokens ending in 'f' or 'i' identify
// native-matched float/integer formats, which are not normalized.
// TextureFormatUndefined reports true: normalized is the safe assumption
// while no format decision has been made.
func (f TextureFormat) IsNormalized() bool {
	if f == TextureFormatUndefined {
		return true
	}
	tok := f.String()
	switch tok[len(tok)-1] {
	case 'f', 'i':
		return false
	}
	return true
}

// Channels returns the channel count of the format, or 0 for
// TextureFormatUndefined.
func (f TextureFormat) Channels() int {
	if f == TextureFormatUndefined || int(f) >= len(formatTokens) {
		return 0
	}
	return int(f-1)%4 + 1
}

// WithChannels returns the variant of the format's family with the given
// channel count, expanding a single-channel base the way "r" expands to
// "rg"/"rgb"/"rgba". The count must be between 1 and 4.
func (f TextureFormat) WithChannels(n int) (TextureFormat, error) {
	if f == TextureFormatUndefined || int(f) >= len(formatTokens) {
		return TextureFormatUndefined, fmt.Errorf("%w: cannot expand %s", ErrUnsupportedFormat, f)
	}
	if n < 1 || n > 4 {
		return TextureFormatUndefined, fmt.Errorf("%w: channel count %d out of range", ErrUnsupportedFormat, n)
	}
	base := f - TextureFormat(int(f-1)%4)
	return base + TextureFormat(n-1), nil
}

// ParseTextureFormat resolves a GL-style token like "r32f" or "rgba8"
// into a TextureFormat. Unknown tokens fail with ErrUnsupportedFormat.
func ParseTextureFormat(token string) (TextureFormat, error) {
	for f, tok := range formatTokens {
		if f != int(TextureFormatUndefined) && tok == token {
			return TextureFormat(f), nil
		}
	}
	return TextureFormatUndefined, fmt.Errorf("%w: unknown format token %q", ErrUnsupportedFormat, token)
}

// dtypeFormats is the static element-type to single-channel base format
// table used by the GPU-scaling strategy. It is read-only after
// definition. Types absent from the table (32-bit integers) have no
// supported storage format. float64 maps to the 32-bit float family and
// is downcast at upload time.
var dtypeFormats = map[DType]TextureFormat{
	DTypeFloat32: TextureFormatR32F,
	DTypeFloat64: TextureFormatR32F,
	DTypeUint8:   TextureFormatR8,
	DTypeUint16:  TextureFormatR16,
	DTypeInt8:    TextureFormatR8,
	DTypeInt16:   TextureFormatR16,
}

// formatForDType returns the single-channel base format for an element
// type, or ErrUnsupportedFormat if the type has no mapping.
func formatForDType(d DType) (TextureFormat, error) {
	f, ok := dtypeFormats[d]
	if !ok {
		return TextureFormatUndefined, fmt.Errorf("%w: %s", ErrUnsupportedFormat, d)
	}
	return f, nil
}
