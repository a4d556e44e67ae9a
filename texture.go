package scitex

import (
	"github.com/gogpu/gputypes"
)

// Option configures a scaled texture during creation.
// Use functional options to customize construction.
//
// Example:
//
//	// CPU scaling with auto clims (the defaults)
//	tex, err := scitex.NewTexture2D(scitex.WithData(data))
//
//	// GPU scaling with automatic format renegotiation
//	tex, err := scitex.NewTexture2D(
//	    scitex.WithData(data),
//	    scitex.WithFormat("auto"),
//	)
type Option func(*textureOptions)

// textureOptions holds optional configuration for texture creation.
type textureOptions struct {
	data      *Tensor
	clim      any
	hasClim   bool
	format    any
	hasFormat bool
	single    bool
	resource  TextureResource
}

// WithData supplies initial data. Construction performs a full
// scale-and-upload, so auto clims materialize immediately.
func WithData(t *Tensor) Option {
	return func(o *textureOptions) {
		o.data = t
	}
}

// WithClim sets the initial display range specification: a Range, the
// string "auto", or a two-element numeric pair (see ParseRange).
// The default is auto.
func WithClim(spec any) Option {
	return func(o *textureOptions) {
		o.clim = spec
		o.hasClim = true
	}
}

// WithFormat requests GPU scaling with the given storage format hint: a
// FormatSpec, the string "auto", a GL-style token like "r32f", a
// TextureFormat, or a DType (see ParseFormat). Without this option the
// texture uses CPU scaling with fixed-point normalized storage.
//
// The "auto" hint additionally grants the texture permission to
// renegotiate its storage format when later uploads carry a different
// element type. If "auto" is requested with no initial data, no format
// decision can be made and the texture degrades to CPU scaling with a
// logged warning.
func WithFormat(spec any) Option {
	return func(o *textureOptions) {
		o.format = spec
		o.hasFormat = true
	}
}

// WithSingleChannel forces single-channel (luminance) interpretation
// regardless of the data's trailing axis.
func WithSingleChannel() Option {
	return func(o *textureOptions) {
		o.single = true
	}
}

// WithResource injects the underlying texture resource. Use this to
// back the texture with a real GPU object; the default is a MemTexture.
func WithResource(res TextureResource) Option {
	return func(o *textureOptions) {
		o.resource = res
	}
}

// texture pairs one scaling strategy with one underlying resource. The
// public methods delegate to the strategy, so strategy overrides always
// take precedence over resource defaults.
type texture struct {
	res    TextureResource
	scaler TextureScaler
	rank   int
}

func newTexture(rank int, dim gputypes.TextureDimension, opts ...Option) (*texture, error) {
	var o textureOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := o.resource
	if res == nil {
		res = NewMemTexture(dim)
	}

	clim := AutoRange()
	if o.hasClim {
		var err error
		clim, err = ParseRange(o.clim)
		if err != nil {
			return nil, err
		}
	}

	var scaler TextureScaler
	var core *scalerCore
	var format TextureFormat

	if o.hasFormat {
		spec, err := ParseFormat(o.format)
		if err != nil {
			return nil, err
		}
		g := NewGPUScaler(res, rank)
		g.clim = clim
		g.single = o.single
		f, err := g.ResolveFormat(spec, o.data)
		if err != nil {
			return nil, err
		}
		if f != TextureFormatUndefined {
			scaler, core, format = g, &g.scalerCore, f
		}
		// Undefined means the format decision is pending: degrade to
		// CPU scaling below.
	}
	if scaler == nil {
		c := NewCPUScaler(res, rank)
		c.clim = clim
		c.single = o.single
		f, err := fixedNormalizedFormat(c.numChannels(o.data))
		if err != nil {
			return nil, err
		}
		scaler, core, format = c, &c.scalerCore, f
	}

	rep := core.repArray(o.data)
	if err := res.Allocate(rep.Shape(), format); err != nil {
		return nil, err
	}

	t := &texture{res: res, scaler: scaler, rank: rank}
	if o.data != nil {
		if err := scaler.ScaleAndSetData(o.data, nil, true); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Clim returns the current display range.
func (t *texture) Clim() Range { return t.scaler.Clim() }

// SetClim updates the display range from a loose specification and
// reports whether a re-upload is required for it to take effect.
func (t *texture) SetClim(spec any) (bool, error) { return t.scaler.SetClim(spec) }

// ClimNormalized re-expresses the current display range in the space
// the shader samples, so downstream shader code always receives ranges
// in one convention regardless of the storage family.
func (t *texture) ClimNormalized() (min, max float64, err error) {
	return t.scaler.ClimNormalized()
}

// IsNormalized reports whether the texture's in-shader representation
// is fixed-point normalized.
func (t *texture) IsNormalized() bool { return t.scaler.IsNormalized() }

// Format returns the resource's active internal format.
func (t *texture) Format() TextureFormat { return t.res.Format() }

// DataType returns the element type of the most recently uploaded data.
func (t *texture) DataType() DType { return t.scaler.DataType() }

// Resource returns the underlying texture resource.
func (t *texture) Resource() TextureResource { return t.res }

// Scaler returns the active scaling strategy.
func (t *texture) Scaler() TextureScaler { return t.scaler }

// CheckData reports whether data would be rejected if uploaded, without
// mutating any texture state.
func (t *texture) CheckData(data *Tensor) error { return t.scaler.CheckData(data) }

// SetData uploads new data through the scaling strategy. Note that a
// format renegotiation may reallocate the underlying storage, so any
// previously obtained references into it must be treated as invalid
// after this call.
func (t *texture) SetData(data *Tensor, offset []int, copy bool) error {
	return t.scaler.ScaleAndSetData(data, offset, copy)
}

// Texture2D is a clim-aware scaled texture over a 2-D resource.
type Texture2D struct {
	texture
}

// NewTexture2D creates a 2-D scaled texture. See Option for
// configuration; with no options it is a CPU-scaled texture over a
// MemTexture with auto clims.
func NewTexture2D(opts ...Option) (*Texture2D, error) {
	t, err := newTexture(2, gputypes.TextureDimension2D, opts...)
	if err != nil {
		return nil, err
	}
	return &Texture2D{texture: *t}, nil
}

// Texture3D is a clim-aware scaled texture over a 3-D resource.
type Texture3D struct {
	texture
}

// NewTexture3D creates a 3-D scaled texture. See Option for
// configuration; with no options it is a CPU-scaled texture over a
// MemTexture with auto clims.
func NewTexture3D(opts ...Option) (*Texture3D, error) {
	t, err := newTexture(3, gputypes.TextureDimension3D, opts...)
	if err != nil {
		return nil, err
	}
	return &Texture3D{texture: *t}, nil
}
