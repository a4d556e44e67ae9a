package scitex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		spec     any
		wantAuto bool
		min, max float64
		wantErr  bool
	}{
		{name: "auto string", spec: "auto", wantAuto: true},
		{name: "auto range", spec: AutoRange(), wantAuto: true},
		{name: "range value", spec: NewRange(-1, 1), min: -1, max: 1},
		{name: "float64 slice", spec: []float64{0, 255}, min: 0, max: 255},
		{name: "float64 array", spec: [2]float64{0.5, 2}, min: 0.5, max: 2},
		{name: "float32 slice", spec: []float32{1, 2}, min: 1, max: 2},
		{name: "int slice", spec: []int{-100, 500}, min: -100, max: 500},
		{name: "int array", spec: [2]int{3, 4}, min: 3, max: 4},
		{name: "bogus string", spec: "bogus", wantErr: true},
		{name: "three elements", spec: []float64{1, 2, 3}, wantErr: true},
		{name: "one element", spec: []int{1}, wantErr: true},
		{name: "wrong type", spec: 3.5, wantErr: true},
		{name: "nil", spec: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRangeSpec) {
					t.Errorf("ParseRange(%v) error = %v, want ErrInvalidRangeSpec", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%v) error: %v", tt.spec, err)
			}
			if r.IsAuto() != tt.wantAuto {
				t.Errorf("IsAuto() = %v, want %v", r.IsAuto(), tt.wantAuto)
			}
			if !tt.wantAuto {
				lo, hi := r.Bounds()
				if lo != tt.min || hi != tt.max {
					t.Errorf("Bounds() = (%g, %g), want (%g, %g)", lo, hi, tt.min, tt.max)
				}
			}
		})
	}
}

func TestRange_String(t *testing.T) {
	if got := AutoRange().String(); got != "auto" {
		t.Errorf("AutoRange().String() = %q, want auto", got)
	}
	if got := NewRange(-1, 2.5).String(); got != "(-1, 2.5)" {
		t.Errorf("NewRange(-1, 2.5).String() = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		spec    any
		want    FormatSpec
		wantErr bool
	}{
		{name: "auto string", spec: "auto", want: AutoFormat()},
		{name: "token string", spec: "r32f", want: NamedFormat(TextureFormatR32F)},
		{name: "texture format", spec: TextureFormatRGBA8, want: NamedFormat(TextureFormatRGBA8)},
		{name: "dtype", spec: DTypeUint16, want: FormatFromType(DTypeUint16)},
		{name: "spec passthrough", spec: AutoFormat(), want: AutoFormat()},
		{name: "unknown token", spec: "r32ui", wantErr: true},
		{name: "wrong type", spec: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%v) error = %v, want ErrUnsupportedFormat", tt.spec, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%v) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%v) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestScalerCore_SetClim(t *testing.T) {
	newCore := func() *scalerCore {
		return &scalerCore{res: NewMemTexture(gputypes.TextureDimension2D), rank: 2, clim: AutoRange()}
	}

	t.Run("becomes auto needs upload", func(t *testing.T) {
		s := newCore()
		s.clim = NewRange(0, 1)
		need, err := s.SetClim("auto")
		if err != nil {
			t.Fatalf("SetClim error: %v", err)
		}
		if !need {
			t.Error("SetClim(auto) = false, want true")
		}
	})

	t.Run("was auto needs upload", func(t *testing.T) {
		s := newCore()
		need, err := s.SetClim([]float64{0, 1})
		if err != nil {
			t.Fatalf("SetClim error: %v", err)
		}
		if !need {
			t.Error("SetClim while unresolved = false, want true")
		}
	})

	t.Run("concrete to concrete needs nothing", func(t *testing.T) {
		s := newCore()
		s.clim = NewRange(0, 1)
		need, err := s.SetClim([]float64{0.2, 0.8})
		if err != nil {
			t.Fatalf("SetClim error: %v", err)
		}
		if need {
			t.Error("SetClim concrete->concrete = true, want false")
		}
	})

	t.Run("invalid spec leaves state untouched", func(t *testing.T) {
		s := newCore()
		s.clim = NewRange(1, 2)
		if _, err := s.SetClim("bogus"); !errors.Is(err, ErrInvalidRangeSpec) {
			t.Fatalf("error = %v, want ErrInvalidRangeSpec", err)
		}
		if lo, hi := s.Clim().Bounds(); lo != 1 || hi != 2 {
			t.Errorf("clim mutated to (%g, %g) after failed set", lo, hi)
		}
	})
}

func TestScalerCore_ClimNormalized(t *testing.T) {
	t.Run("unresolved auto", func(t *testing.T) {
		s := &scalerCore{res: NewMemTexture(gputypes.TextureDimension2D), rank: 2, clim: AutoRange()}
		if _, _, err := s.ClimNormalized(); !errors.Is(err, ErrRangeUnresolved) {
			t.Errorf("error = %v, want ErrRangeUnresolved", err)
		}
	})

	t.Run("normalized format remaps over dtype range", func(t *testing.T) {
		res := NewMemTexture(gputypes.TextureDimension2D)
		if err := res.Allocate([]int{10, 10, 1}, TextureFormatR8); err != nil {
			t.Fatal(err)
		}
		s := &scalerCore{res: res, rank: 2, clim: NewRange(0, 127.5), dtype: DTypeUint8}
		lo, hi, err := s.ClimNormalized()
		if err != nil {
			t.Fatalf("ClimNormalized error: %v", err)
		}
		if lo != 0 || hi != 0.5 {
			t.Errorf("ClimNormalized() = (%g, %g), want (0, 0.5)", lo, hi)
		}
	})

	t.Run("native-matched format is identity", func(t *testing.T) {
		res := NewMemTexture(gputypes.TextureDimension2D)
		if err := res.Allocate([]int{10, 10, 1}, TextureFormatR32F); err != nil {
			t.Fatal(err)
		}
		s := &scalerCore{res: res, rank: 2, clim: NewRange(-100, 500), dtype: DTypeFloat32}
		lo, hi, err := s.ClimNormalized()
		if err != nil {
			t.Fatalf("ClimNormalized error: %v", err)
		}
		if lo != -100 || hi != 500 {
			t.Errorf("ClimNormalized() = (%g, %g), want (-100, 500)", lo, hi)
		}
	})
}

func TestScalerCore_DefaultClims(t *testing.T) {
	s := &scalerCore{}
	tests := []struct {
		dtype    DType
		min, max float64
	}{
		{DTypeFloat32, 0, 1},
		{DTypeFloat64, 0, 1},
		{DTypeUint8, 0, 255},
		{DTypeInt16, -32768, 32767},
	}
	for _, tt := range tests {
		r := s.defaultClims(tt.dtype)
		lo, hi := r.Bounds()
		if lo != tt.min || hi != tt.max {
			t.Errorf("defaultClims(%s) = (%g, %g), want (%g, %g)", tt.dtype, lo, hi, tt.min, tt.max)
		}
	}
}

func TestScalerCore_RepArray(t *testing.T) {
	s := &scalerCore{rank: 2}

	t.Run("no data defaults to float32 rgba", func(t *testing.T) {
		rep := s.repArray(nil)
		shape := rep.Shape()
		if shape[0] != 10 || shape[1] != 10 || shape[2] != 4 {
			t.Errorf("shape = %v, want [10 10 4]", shape)
		}
		if rep.DType() != DTypeFloat32 {
			t.Errorf("dtype = %s, want float32", rep.DType())
		}
	})

	t.Run("matches data type and channels", func(t *testing.T) {
		data, _ := Zeros([]int{512, 512, 3}, DTypeUint16)
		rep := s.repArray(data)
		shape := rep.Shape()
		if shape[0] != 10 || shape[1] != 10 || shape[2] != 3 {
			t.Errorf("shape = %v, want [10 10 3]", shape)
		}
		if rep.DType() != DTypeUint16 {
			t.Errorf("dtype = %s, want uint16", rep.DType())
		}
		// Sized independently of the data's real extent.
		if rep.Len() == data.Len() {
			t.Error("representative array must not scale with real data")
		}
	})

	t.Run("luminance hint forces one channel", func(t *testing.T) {
		s := &scalerCore{rank: 2, single: true}
		data, _ := Zeros([]int{8, 8, 3}, DTypeUint8)
		rep := s.repArray(data)
		shape := rep.Shape()
		if shape[len(shape)-1] != 1 {
			t.Errorf("channel axis = %d, want 1", shape[len(shape)-1])
		}
	})
}
