package graphics

import (
	"testing"
)

func TestMajorVersionParsing(t *testing.T) {

	tests := []struct {
		name    string
		version string
		want    int
	}{
		{"desktop 1.x", "1.5 Mesa 7.0.3", 1},
		{"desktop 2.x", "2.1.0 NVIDIA 390.157", 2},
		{"desktop 4.x", "4.6.0 NVIDIA 535.86.05", 4},
		{"es prefix", "OpenGL ES 2.0 (ANGLE 2.1.0)", 2},
		{"es 1.x", "OpenGL ES-CM 1.1", 1},
		{"no digits", "unknown", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := majorVersion(tt.version); got != tt.want {
				t.Errorf("%q parsed as %d, want %d", tt.version, got, tt.want)
			}
		})
	}
}
