package web

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vbonduro/kondate/internal/service"
)

func TestExpiryClass(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{days: -1, want: "expired"},
		{days: 0, want: "soon"},
		{days: 2, want: "soon"},
		{days: 3, want: "week"},
		{days: 7, want: "week"},
		{days: 8, want: "ok"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, expiryClass(tt.days), "days=%d", tt.days)
	}
}

func TestFormatDeletions(t *testing.T) {
	result := &service.ConsumeResult{
		Deletions: []service.Deletion{{Name: "玉ねぎ", Count: 2}, {Name: "卵", Count: 0}},
		Total:     2,
	}
	assert.Equal(t, "玉ねぎ: 2, 卵: 0", formatDeletions(result))
}

func TestWriteTimeoutFollowsSuggestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		suggest time.Duration
		want    time.Duration
	}{
		{name: "short suggest keeps default", suggest: 60 * time.Second, want: 120 * time.Second},
		{name: "long suggest extends write", suggest: 5 * time.Minute, want: 5*time.Minute + 30*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(nil, nil, nil, slog.Default())
			s.SetSuggestTimeout(tt.suggest)
			assert.Equal(t, tt.want, s.httpServer(":0").WriteTimeout)
		})
	}
}

func TestWriteTimeoutDefault(t *testing.T) {
	s := NewServer(nil, nil, nil, slog.Default())
	assert.Equal(t, 120*time.Second, s.httpServer(":0").WriteTimeout)
}
