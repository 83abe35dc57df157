package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("video/mp4"))
	assert.False(t, IsImage("application/pdf"))
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("video/mp4"))
	assert.True(t, IsVideo("application/x-mpegURL"))
	assert.False(t, IsVideo("image/png"))
}

func TestHasVideoExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"lecture.mp4", true},
		{"LECTURE.MOV", true},
		{"demo.webm", true},
		{"notes.pdf", false},
		{"archive.mp4.zip", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVideoExtension(tt.fileName))
		})
	}
}
