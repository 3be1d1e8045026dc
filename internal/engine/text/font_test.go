package text

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/cubetac/internal/engine/draw"
	"github.com/Faultbox/cubetac/pkg/math"
)

const sampleMetrics = `char,x_min,x_max,y_min,y_max,advance,u_min,u_max,v_min,v_max
"a", 1, 8, 0, 9, 576, 0.1, 0.2, 0.3, 0.4,
"\"", 2, 5, 7, 12, 384, 0.2, 0.3, 0.3, 0.4,
"\\", 0, 6, -2, 12, 384, 0.3, 0.4, 0.3, 0.4,
"?", 1, 7, 0, 12, 512, 0.4, 0.5, 0.3, 0.4,
, , 0, 2, -2, 2, 256, 0.5, 0.6, 0.3, 0.4
b,1,8,0,12,576,0.6,0.7,0.3,0.4
" ", 0, 0, 0, 0, 320, 0, 0, 0, 0,
`

func TestParseMetrics(t *testing.T) {
	glyphs, err := ParseMetrics(strings.NewReader(sampleMetrics))
	if err != nil {
		t.Fatalf("ParseMetrics: %v", err)
	}

	want := []rune{'a', '"', '\\', '?', ',', 'b', ' '}
	if len(glyphs) != len(want) {
		t.Fatalf("parsed %d glyphs, want %d", len(glyphs), len(want))
	}
	for i, r := range want {
		if glyphs[i].Char != r {
			t.Errorf("glyph %d: char %q, want %q", i, glyphs[i].Char, r)
		}
	}

	a := glyphs[0]
	if a.XMin != 1 || a.XMax != 8 || a.YMax != 9 || a.VMax != 0.4 {
		t.Errorf("glyph a = %+v", a)
	}
	if a.Advance != fixed.I(9) {
		t.Errorf("advance = %v, want 9px", a.Advance)
	}
	if glyphs[2].YMin != -2 {
		t.Errorf("backslash y_min = %v, want -2", glyphs[2].YMin)
	}
}

func TestParseMetricsErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"too few fields", `"a", 1, 2, 3`},
		{"not a number", `"a", 1, 8, 0, 9, wide, 0.1, 0.2, 0.3, 0.4`},
		{"two chars", `ab, 1, 8, 0, 9, 576, 0.1, 0.2, 0.3, 0.4`},
		{"unterminated quote", `"a, 1, 8, 0, 9, 576, 0.1, 0.2, 0.3, 0.4`},
		{"bad escape", `"\n", 1, 8, 0, 9, 576, 0.1, 0.2, 0.3, 0.4`},
		{"empty char", `, 1, 8, 0, 9, 576, 0.1, 0.2, 0.3, 0.4`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetrics(strings.NewReader(tt.row + "\n"))
			if err == nil {
				t.Errorf("row %q parsed without error", tt.row)
			}
		})
	}
}

func newSampleFont(t *testing.T) *Font {
	t.Helper()
	glyphs, err := ParseMetrics(strings.NewReader(sampleMetrics))
	if err != nil {
		t.Fatalf("ParseMetrics: %v", err)
	}
	f, err := NewFont(glyphs, "font_atlas.png")
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	return f
}

func TestMissingFallback(t *testing.T) {
	_, err := NewFont([]Glyph{{Char: 'a'}}, "font_atlas.png")
	if !errors.Is(err, ErrMissingFallback) {
		t.Errorf("NewFont without '?' = %v, want ErrMissingFallback", err)
	}
}

func TestUnknownCharFallsBack(t *testing.T) {
	f := newSampleFont(t)
	if got := f.Glyph('Z'); got.Char != '?' {
		t.Errorf("Glyph('Z') = %q, want '?'", got.Char)
	}
	if got := f.Glyph('a'); got.Char != 'a' {
		t.Errorf("Glyph('a') = %q", got.Char)
	}
}

func TestWidth(t *testing.T) {
	f := newSampleFont(t)
	tests := []struct {
		s    string
		size float32
		want float32
	}{
		{"", 1, 0},
		{"a", 16, 9},
		{"ab", 16, 18},
		{"a b", 32, 2 * (9 + 5 + 9)},
		{"Z", 16, 8}, // falls back to '?'
	}
	for _, tt := range tests {
		if got := f.Width(tt.s, tt.size); got != tt.want {
			t.Errorf("Width(%q, %v) = %v, want %v", tt.s, tt.size, got, tt.want)
		}
	}
}

func TestDraw(t *testing.T) {
	f := newSampleFont(t)
	q := draw.NewQueue()
	ctx := draw.NewContext(800, 600, 1, q)

	if err := f.Draw(ctx, "a b", math.Vec2{X: 0.1, Y: 0.1}, 0.05, -1, draw.ColorText); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// The space has an empty box and queues nothing.
	if q.Len() != 2 {
		t.Errorf("queued %d glyphs, want 2", q.Len())
	}

	var cmds []draw.Command
	q.Flush(backendFunc(func(cmd *draw.Command) error {
		cmds = append(cmds, *cmd)
		return nil
	}))
	for _, cmd := range cmds {
		if cmd.Shader != draw.ShaderText || cmd.Texture != "font_atlas.png" || cmd.Z != -1 {
			t.Errorf("glyph command = %+v", cmd)
		}
		if cmd.Params[4] != 0.1 && cmd.Params[4] != 0.6 {
			t.Errorf("unexpected u_min %v", cmd.Params[4])
		}
	}
}

type backendFunc func(cmd *draw.Command) error

func (f backendFunc) Draw(cmd *draw.Command) error { return f(cmd) }
