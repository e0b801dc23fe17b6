package renderer

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "long hex", input: "#1E88E5", want: color.NRGBA{0x1e, 0x88, 0xe5, 0xff}},
		{name: "short hex", input: "#fff", want: color.NRGBA{255, 255, 255, 255}},
		{name: "hex with alpha", input: "#00000080", want: color.NRGBA{0, 0, 0, 0x80}},
		{name: "short hex with alpha", input: "#f008", want: color.NRGBA{255, 0, 0, 0x88}},
		{name: "rgb", input: "rgb(255, 193, 7)", want: color.NRGBA{255, 193, 7, 255}},
		{name: "rgba", input: "rgba(0, 0, 0, 0)", want: color.NRGBA{0, 0, 0, 0}},
		{name: "rgba half", input: "rgba(10,20,30,0.5)", want: color.NRGBA{10, 20, 30, 128}},
		{name: "rgb clamps", input: "rgb(300, -5, 12.4)", want: color.NRGBA{255, 0, 12, 255}},
		{name: "keyword", input: " White ", want: color.NRGBA{255, 255, 255, 255}},
		{name: "transparent", input: "transparent", want: color.NRGBA{}},
		{name: "empty is transparent", input: "", want: color.NRGBA{}},
		{name: "bad hex", input: "#12345", wantErr: true},
		{name: "bad hex digits", input: "#zzzzzz", wantErr: true},
		{name: "bad function", input: "rgb(1, 2)", wantErr: true},
		{name: "unterminated", input: "rgb(1, 2, 3", wantErr: true},
		{name: "bad channel", input: "rgb(a, 2, 3)", wantErr: true},
		{name: "unknown keyword", input: "chartreuse-ish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
