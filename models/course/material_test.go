package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		material CourseMaterial
		want     string
	}{
		{
			name:     "explicit title wins",
			material: CourseMaterial{Title: "Intro", OriginalName: "intro-final-v2.mp4"},
			want:     "Intro",
		},
		{
			name:     "falls back to original file name",
			material: CourseMaterial{OriginalName: "intro-final-v2.mp4", FilePath: "courses/1/abc.mp4"},
			want:     "intro-final-v2.mp4",
		},
		{
			name:     "falls back to stored file name",
			material: CourseMaterial{FilePath: "courses/1/abc.mp4"},
			want:     "abc.mp4",
		},
		{
			name:     "untitled link gets a generic label",
			material: CourseMaterial{Kind: MaterialKindLink, ExternalURL: "https://youtu.be/x"},
			want:     "Video",
		},
		{
			name:     "nothing to show",
			material: CourseMaterial{},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.material.DisplayName())
		})
	}
}
