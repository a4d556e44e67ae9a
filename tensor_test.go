package scitex

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNewTensor(t *testing.T) {
	tr, err := NewTensor([]int{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("NewTensor error: %v", err)
	}
	if tr.DType() != DTypeFloat32 {
		t.Errorf("DType() = %s, want float32", tr.DType())
	}
	if tr.Rank() != 2 || tr.Len() != 6 {
		t.Errorf("Rank()=%d Len()=%d, want 2, 6", tr.Rank(), tr.Len())
	}
}

func TestNewTensor_Errors(t *testing.T) {
	if _, err := NewTensor([]int{2, 3}, []uint8{1, 2}); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := NewTensor([]int{0, 3}, []uint8{}); err == nil {
		t.Error("expected error for zero dimension")
	}
	if _, err := NewTensor([]int{-1}, []uint8{0}); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestNewTensor_DTypes(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Tensor, error)
		want DType
	}{
		{"uint8", func() (*Tensor, error) { return NewTensor([]int{2}, []uint8{1, 2}) }, DTypeUint8},
		{"int8", func() (*Tensor, error) { return NewTensor([]int{2}, []int8{1, 2}) }, DTypeInt8},
		{"uint16", func() (*Tensor, error) { return NewTensor([]int{2}, []uint16{1, 2}) }, DTypeUint16},
		{"int16", func() (*Tensor, error) { return NewTensor([]int{2}, []int16{1, 2}) }, DTypeInt16},
		{"uint32", func() (*Tensor, error) { return NewTensor([]int{2}, []uint32{1, 2}) }, DTypeUint32},
		{"int32", func() (*Tensor, error) { return NewTensor([]int{2}, []int32{1, 2}) }, DTypeInt32},
		{"float32", func() (*Tensor, error) { return NewTensor([]int{2}, []float32{1, 2}) }, DTypeFloat32},
		{"float64", func() (*Tensor, error) { return NewTensor([]int{2}, []float64{1, 2}) }, DTypeFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := tt.make()
			if err != nil {
				t.Fatalf("NewTensor error: %v", err)
			}
			if tr.DType() != tt.want {
				t.Errorf("DType() = %s, want %s", tr.DType(), tt.want)
			}
		})
	}
}

func TestZeros(t *testing.T) {
	tr, err := Zeros([]int{10, 10, 3}, DTypeInt16)
	if err != nil {
		t.Fatalf("Zeros error: %v", err)
	}
	if tr.DType() != DTypeInt16 || tr.Len() != 300 {
		t.Errorf("got %s/%d, want int16/300", tr.DType(), tr.Len())
	}
	lo, hi := tr.MinMax()
	if lo != 0 || hi != 0 {
		t.Errorf("MinMax() = (%g, %g), want zeros", lo, hi)
	}
	if _, err := Zeros([]int{1}, DTypeUnknown); err == nil {
		t.Error("expected error for unknown dtype")
	}
}

func TestTensor_MinMax(t *testing.T) {
	tests := []struct {
		name     string
		tensor   func() *Tensor
		min, max float64
	}{
		{
			"int16 with negatives",
			func() *Tensor { tr, _ := NewTensor([]int{4}, []int16{-100, 3, 500, 0}); return tr },
			-100, 500,
		},
		{
			"uint8",
			func() *Tensor { tr, _ := NewTensor([]int{3}, []uint8{7, 250, 12}); return tr },
			7, 250,
		},
		{
			"float32 ignores NaN",
			func() *Tensor {
				tr, _ := NewTensor([]int{4}, []float32{0.5, float32(math.NaN()), -1.5, 2})
				return tr
			},
			-1.5, 2,
		},
		{
			"float64 ignores NaN",
			func() *Tensor {
				tr, _ := NewTensor([]int{3}, []float64{math.NaN(), 0.25, 0.75})
				return tr
			},
			0.25, 0.75,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.tensor().MinMax()
			if lo != tt.min || hi != tt.max {
				t.Errorf("MinMax() = (%g, %g), want (%g, %g)", lo, hi, tt.min, tt.max)
			}
		})
	}
}

func TestTensor_Channels(t *testing.T) {
	tests := []struct {
		name     string
		shape    []int
		rank     int
		channels int
		single   bool
	}{
		{"rank-matched 2d", []int{16, 16}, 2, 1, true},
		{"explicit luminance axis", []int{16, 16, 1}, 2, 1, true},
		{"rgb 2d", []int{16, 16, 3}, 2, 3, false},
		{"rgba 2d", []int{16, 16, 4}, 2, 4, false},
		{"rank-matched 3d", []int{4, 8, 8}, 3, 1, true},
		{"rgb 3d", []int{4, 8, 8, 3}, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Zeros(tt.shape, DTypeUint8)
			if err != nil {
				t.Fatalf("Zeros error: %v", err)
			}
			if got := tr.NumChannels(tt.rank); got != tt.channels {
				t.Errorf("NumChannels(%d) = %d, want %d", tt.rank, got, tt.channels)
			}
			if got := tr.IsSingleChannel(tt.rank); got != tt.single {
				t.Errorf("IsSingleChannel(%d) = %v, want %v", tt.rank, got, tt.single)
			}
		})
	}
}

func TestTensor_Float32(t *testing.T) {
	src, _ := NewTensor([]int{3}, []int16{-1, 0, 2})
	got := src.Float32()
	want := []float32{-1, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Float32()[%d] = %g, want %g", i, got[i], want[i])
		}
	}

	// float32 tensors expose the backing slice without copying.
	f32, _ := NewTensor([]int{2}, []float32{1, 2})
	f32.Float32()[0] = 42
	if f32.Data().([]float32)[0] != 42 {
		t.Error("Float32() on a float32 tensor should alias the backing slice")
	}
}

func TestTensor_Clone(t *testing.T) {
	src, _ := NewTensor([]int{2, 2}, []uint8{1, 2, 3, 4})
	dup := src.Clone()
	dup.Data().([]uint8)[0] = 99
	if src.Data().([]uint8)[0] != 1 {
		t.Error("Clone() should not share the backing slice")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	tr := FromImage(img)
	shape := tr.Shape()
	if len(shape) != 3 || shape[0] != 3 || shape[1] != 4 || shape[2] != 4 {
		t.Fatalf("FromImage shape = %v, want [3 4 4]", shape)
	}
	if tr.DType() != DTypeUint8 {
		t.Errorf("FromImage dtype = %s, want uint8", tr.DType())
	}
	pix := tr.Data().([]uint8)
	i := (2*4 + 1) * 4 // row 2, col 1
	if pix[i] != 10 || pix[i+1] != 20 || pix[i+2] != 30 || pix[i+3] != 255 {
		t.Errorf("pixel (1,2) = %v, want [10 20 30 255]", pix[i:i+4])
	}
}

func TestFromImageResampled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	tr, err := FromImageResampled(img, 4, 2)
	if err != nil {
		t.Fatalf("FromImageResampled error: %v", err)
	}
	shape := tr.Shape()
	if shape[0] != 2 || shape[1] != 4 || shape[2] != 4 {
		t.Errorf("shape = %v, want [2 4 4]", shape)
	}
	if _, err := FromImageResampled(img, 0, 2); err == nil {
		t.Error("expected error for zero size")
	}
}
