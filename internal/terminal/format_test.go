package terminal

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"sub-minute", 42500 * time.Millisecond, "42.5s"},
		{"zero", 0, "0.0s"},
		{"minutes", 95 * time.Second, "1m 35.0s"},
		{"hours worth", 3601 * time.Second, "60m 1.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	WithColorsDisabled(func() {
		got := WrapText("aaa bbb ccc ddd", 9, "  ")
		lines := strings.Split(got, "\n")
		if len(lines) < 2 {
			t.Fatalf("expected wrapping, got %q", got)
		}
		for _, l := range lines {
			if !strings.HasPrefix(l, "  ") {
				t.Errorf("line %q missing indent", l)
			}
		}
	})
}

func TestWrapTextEmpty(t *testing.T) {
	if got := WrapText("   ", 20, "  "); got != "" {
		t.Errorf("WrapText on blank input = %q, want empty", got)
	}
}

func TestColorToggle(t *testing.T) {
	WithColorsDisabled(func() {
		if Color(Red) != "" {
			t.Error("Color should return empty when disabled")
		}
	})
}

func TestRulerWidth(t *testing.T) {
	WithColorsDisabled(func() {
		if got := Ruler(5, "-"); got != "-----" {
			t.Errorf("Ruler = %q", got)
		}
	})
}
