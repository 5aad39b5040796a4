package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveChannel(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		typeTag  string
		want     string
	}{
		{"explicit wins over type", "x", "like", "x"},
		{"explicit wins over unknown type", "x", "whatever", "x"},
		{"comment type", "", "comment", "comment_channel"},
		{"like type", "", "like", "like_channel"},
		{"follow type", "", "follow", "follow_channel"},
		{"message type", "", "message", "message_channel"},
		{"post type", "", "post", "post_channel"},
		{"unknown type falls back", "", "unknown", "general_channel"},
		{"nothing given falls back", "", "", "general_channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveChannel(tt.explicit, tt.typeTag))
		})
	}
}
