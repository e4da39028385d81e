package service

import (
	"testing"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestJanitorService_CleanupIdleSessions(t *testing.T) {
	tests := []struct {
		name            string
		idleFor         time.Duration
		expectedEvicted int
	}{
		{
			name:            "idle session evicted",
			idleFor:         3 * time.Hour,
			expectedEvicted: 1,
		},
		{
			name:            "recent session kept",
			idleFor:         10 * time.Minute,
			expectedEvicted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			store := NewSessionStore()
			store.now = func() time.Time { return now }
			store.Put("tg:123", &domain.Session{})
			now = now.Add(tt.idleFor)

			service := NewJanitorService(store, 2*time.Hour, testutil.NewTestLogger())

			evicted := service.CleanupIdleSessions()

			assert.Equal(t, tt.expectedEvicted, evicted)
			assert.Equal(t, 1-tt.expectedEvicted, store.Len())
		})
	}
}
