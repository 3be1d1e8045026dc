package text

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"
)

// metricsHeader names the columns of a font metrics file.
var metricsHeader = []string{"char", "x_min", "x_max", "y_min", "y_max", "advance", "u_min", "u_max", "v_min", "v_max"}

// ParseMetrics reads glyph metrics, one glyph per row. Fields may be padded
// with whitespace and rows may end with a comma. The char field is either a
// single bare character or a double-quoted string with backslash escapes.
func ParseMetrics(r io.Reader) ([]Glyph, error) {
	var glyphs []Glyph

	sc := bufio.NewScanner(r)
	lineNo := 0
	headerSeen := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields, err := splitRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if !headerSeen && isHeader(fields) {
			headerSeen = true
			continue
		}

		g, err := parseGlyph(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		glyphs = append(glyphs, g)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}
	return glyphs, nil
}

func isHeader(fields []string) bool {
	if len(fields) != len(metricsHeader) {
		return false
	}
	for i, f := range fields {
		if f != metricsHeader[i] {
			return false
		}
	}
	return true
}

// splitRow splits a row on commas. The first field may be quoted; a quoted
// field keeps commas and unescapes \" and \\.
func splitRow(line string) ([]string, error) {
	var fields []string

	rest := line
	if strings.HasPrefix(rest, `"`) {
		char, n, err := unquote(rest)
		if err != nil {
			return nil, err
		}
		fields = append(fields, char)
		rest = strings.TrimSpace(rest[n:])
		if rest == "" {
			return fields, nil
		}
		if rest[0] != ',' {
			return nil, fmt.Errorf("unexpected %q after quoted char", rest[0])
		}
		rest = rest[1:]
	} else {
		// A bare char may itself be a comma only when followed by another.
		first, size := utf8.DecodeRuneInString(rest)
		end := strings.IndexByte(rest[size:], ',')
		if end < 0 {
			return []string{strings.TrimSpace(rest)}, nil
		}
		if first == ',' && strings.TrimSpace(rest[size:size+end]) != "" {
			return nil, fmt.Errorf("empty char field")
		}
		fields = append(fields, strings.TrimSpace(rest[:size+end]))
		rest = rest[size+end+1:]
	}

	parts := strings.Split(rest, ",")
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields, nil
}

// unquote reads a double-quoted string at the start of s and returns its
// value and the number of bytes consumed.
func unquote(s string) (string, int, error) {
	var b strings.Builder
	escaped := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			if c != '"' && c != '\\' {
				return "", 0, fmt.Errorf("unknown escape \\%c", c)
			}
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated quoted char")
}

func parseGlyph(fields []string) (Glyph, error) {
	if len(fields) != len(metricsHeader) {
		return Glyph{}, fmt.Errorf("expected %d fields, got %d", len(metricsHeader), len(fields))
	}

	char, size := utf8.DecodeRuneInString(fields[0])
	if char == utf8.RuneError || size != len(fields[0]) {
		return Glyph{}, fmt.Errorf("char field %q is not a single character", fields[0])
	}

	var values [9]float32
	for i := range values {
		v, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return Glyph{}, fmt.Errorf("%s: %w", metricsHeader[i+1], err)
		}
		values[i] = float32(v)
	}

	return Glyph{
		Char:    char,
		XMin:    values[0],
		XMax:    values[1],
		YMin:    values[2],
		YMax:    values[3],
		Advance: fixed.Int26_6(math32.Round(values[4])),
		UMin:    values[5],
		UMax:    values[6],
		VMin:    values[7],
		VMax:    values[8],
	}, nil
}
