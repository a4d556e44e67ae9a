// Package scitex provides color-limit aware texture scaling for
// scientific visualization on the GoGPU stack.
//
// # Overview
//
// scitex sits between array-producing visualization code and a GPU
// texture resource. For every data upload it decides three things at
// once: the on-GPU storage format, whether normalization happens on the
// CPU before upload or is deferred to the shader, and how the display
// value range ("clim") is re-expressed in the space the shader samples.
// Keeping those three consistent under repeated uploads is the whole
// point of the package; getting them out of sync produces silently
// wrong pixels, not errors.
//
// # Quick Start
//
//	import "github.com/gogpu/scitex"
//
//	data, _ := scitex.NewTensor([]int{512, 512}, samples) // []int16 samples
//
//	// CPU scaling: storage stays fixed-point normalized, samples are
//	// rescaled on the host so clim maps onto [0, 1].
//	tex, err := scitex.NewTexture2D(scitex.WithData(data))
//
//	// GPU scaling: storage tracks the native element type, nothing is
//	// touched on the host, the shader applies the clim.
//	tex, err = scitex.NewTexture2D(
//	    scitex.WithData(data),
//	    scitex.WithFormat("auto"),
//	)
//
//	lo, hi, err := tex.ClimNormalized()
//
// # Scaling strategies
//
// CPUScaler guarantees fixed-point normalized storage regardless of the
// input element type by rescaling sample values into [0, 1] on the host
// before upload. GPUScaler instead picks a storage format as close to
// the input's native type as possible and never rewrites host memory;
// when constructed with the "auto" format hint it may renegotiate the
// storage format as new data with a different element type arrives.
//
// # Texture resources
//
// The actual GPU object is consumed through the narrow TextureResource
// interface. MemTexture is a host-memory implementation useful for
// tests and headless pipelines; real backends wrap their texture
// objects behind the same four methods.
//
// # Logging
//
// scitex is silent by default. Call SetLogger to receive diagnostics,
// including the advisory warning emitted when automatic format
// resolution is requested without data and the texture degrades to CPU
// scaling.
package scitex
