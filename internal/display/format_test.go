package display

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1048576, "5.0 MiB"},
		{1073741824, "1.0 GiB"},
		{1099511627776, "1.0 TiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{1, 4, "25.0%"},
		{3, 4, "75.0%"},
		{0, 4, "0.0%"},
		{4, 4, "100.0%"},
		{1, 3, "33.3%"},
		{0, 0, "n/a"},
		{5, 0, "n/a"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.part, tt.whole); got != tt.want {
			t.Errorf("FormatPercent(%d, %d) = %q, want %q", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(12, 48, "shots"); got != "12 of 48 shots" {
		t.Errorf("FormatRatio = %q", got)
	}
	if got := FormatRatio(0, 0, "images"); got != "0 of 0 images" {
		t.Errorf("FormatRatio = %q", got)
	}
}
