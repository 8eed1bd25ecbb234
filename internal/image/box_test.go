package image

import (
	"errors"
	"testing"
)

func TestBox_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		box        Box
		srcW, srcH float64
		wantW      int
		wantH      int
	}{
		{"square icon", Square(48), 512, 512, 48, 48},
		{"square from wide source", Square(32), 400, 100, 32, 32},
		{"width only", Width(300), 600, 150, 300, 75},
		{"height only", Height(200), 300, 400, 150, 200},
		{"rounding", Width(200), 3, 1, 200, 67},
		{"never zero", Width(10), 1000, 1, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := tt.box.Resolve(tt.srcW, tt.srcH)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBox_ResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		srcW float64
		srcH float64
	}{
		{"empty", Box{}, 10, 10},
		{"negative", Box{Width: -1}, 10, 10},
		{"too large", Square(MaxDimension + 1), 10, 10},
		{"resolved too large", Height(8000), 100, 1},
		{"no source", Square(16), 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.box.Resolve(tt.srcW, tt.srcH); !errors.Is(err, ErrInvalidBox) {
				t.Errorf("err = %v, want ErrInvalidBox", err)
			}
		})
	}
}

func TestBox_String(t *testing.T) {
	if got := Width(200).String(); got != "200xauto" {
		t.Errorf("String() = %q", got)
	}
	if got := Square(16).String(); got != "16x16" {
		t.Errorf("String() = %q", got)
	}
}

func TestFitContain(t *testing.T) {
	x, y, w, h := fitContain(200, 100, 64, 64)
	if w != 64 || h != 32 {
		t.Errorf("size = %gx%g, want 64x32", w, h)
	}
	if x != 0 || y != 16 {
		t.Errorf("offset = %g,%g, want 0,16", x, y)
	}
}
