package heightfield

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func gridText(size int, cell func(x, y int) string) string {
	var sb strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(cell(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestParseGrid(t *testing.T) {
	text := gridText(3, func(x, y int) string {
		if x == 1 && y == 1 {
			return "e"
		}
		return fmt.Sprintf("%d.5", x+y*3)
	})

	g, err := ParseGrid(strings.NewReader(text), 3)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if g.At(0, 0) != 0.5 {
		t.Errorf("At(0,0) = %v, want 0.5", g.At(0, 0))
	}
	if g.At(2, 2) != 8.5 {
		t.Errorf("At(2,2) = %v, want 8.5", g.At(2, 2))
	}
	if g.At(1, 1) != 0 {
		t.Errorf("no-data cell should read as 0, got %v", g.At(1, 1))
	}
}

func TestParseGridShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few rows", "1,2,3\n4,5,6\n"},
		{"ragged row", "1,2,3\n4,5\n7,8,9\n"},
		{"too many columns", "1,2,3,4\n4,5,6,7\n7,8,9,0\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(strings.NewReader(tt.text), 3)
			if !errors.Is(err, ErrInvalidTileSize) {
				t.Errorf("expected ErrInvalidTileSize, got %v", err)
			}
		})
	}
}
