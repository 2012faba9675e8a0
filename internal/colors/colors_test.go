package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hex6", "#ff0000", "#ff0000"},
		{"hex3", "#f00", "#f00"},
		{"hex8", "#ff000080", "#ff000080"},
		{"bare hex6", "ff0000", "#ff0000"},
		{"bare hex3", "0af", "#0af"},
		{"rgb", "rgb(255, 0, 0)", "rgb(255, 0, 0)"},
		{"rgba", "rgba(255,0,0,0.5)", "rgba(255,0,0,0.5)"},
		{"hsl", "hsl(120, 100%, 50%)", "hsl(120, 100%, 50%)"},
		{"hsla", "hsla(120, 100%, 50%, 1)", "hsla(120, 100%, 50%, 1)"},
		{"named", "red", "red"},
		{"named mixed case", "DarkSlateBlue", "DarkSlateBlue"},
		{"keyword", "transparent", "transparent"},
		{"garbage", "notacolor", Neutral},
		{"empty", "", Neutral},
		{"bare hex wrong length", "ff00", Neutral},
		{"broken rgb", "rgb(255,0)", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { Display(tt.in) })
			assert.Equal(t, tt.want, Display(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("navy"))
	assert.False(t, Valid("ff0000"))
	assert.False(t, Valid("blurple"))
}
