package litweave

import (
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		srcPath string
		format  Format
		want    string
	}{
		{
			name:    "simple_rmd",
			srcPath: "analysis.R",
			format:  FormatRmd,
			want:    "analysis.Rmd",
		},
		{
			name:    "with_path",
			srcPath: "/home/user/project/analysis.R",
			format:  FormatRmd,
			want:    "/home/user/project/analysis.Rmd",
		},
		{
			name:    "latex_format",
			srcPath: "analysis.R",
			format:  FormatRnw,
			want:    "analysis.Rnw",
		},
		{
			name:    "lowercase_extension",
			srcPath: "scripts/model.r",
			format:  FormatRhtml,
			want:    "scripts/model.Rhtml",
		},
		{
			name:    "no_extension",
			srcPath: "Makefile-sim",
			format:  FormatRrst,
			want:    "Makefile-sim.Rrst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOutputPath(tt.srcPath, tt.format)
			if got != tt.want {
				t.Errorf("ResolveOutputPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
