package memory

import (
	"testing"

	"vetvox-be/internal/recording"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepositorySaveGetDelete(t *testing.T) {
	repo := NewSessionRepository()

	controller := &recording.SessionController{}
	repo.Save("session-1", controller)

	got, found := repo.Get("session-1")
	assert.True(t, found)
	assert.Same(t, controller, got)

	repo.Delete("session-1")
	_, found = repo.Get("session-1")
	assert.False(t, found)
}

func TestSessionRepositoryMissingKey(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("nope")
	assert.False(t, found)
}
