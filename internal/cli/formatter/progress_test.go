package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name   string
		share  float64
		width  int
		filled int
	}{
		{"empty", 0.0, 10, 0},
		{"half", 0.5, 10, 5},
		{"full", 1.0, 10, 10},
		{"over 100% clamps", 1.5, 10, 10},
		{"negative clamps", -0.5, 10, 0},
		{"tiny width clamps to 2", 0.5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderCompactBar(tt.share, tt.width, StyleBlue))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
		})
	}
}

func TestRenderBar(t *testing.T) {
	got := stripANSI(RenderBar(0.255, 4))
	assert.Equal(t, "[█░░░]  25.5%", got)
}

func TestRenderAttainment(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderAttainment(0.5, 10)))
	assert.Equal(t, "[██████████] 120%", stripANSI(RenderAttainment(1.2, 10)), "bar clamps, label does not")
}
