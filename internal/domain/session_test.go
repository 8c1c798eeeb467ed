package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/chathub/internal/domain"
)

func TestPresenceStatus_Valid(t *testing.T) {
	assert.True(t, domain.PresenceAvailable.Valid())
	assert.True(t, domain.PresenceInvisible.Valid())
	assert.False(t, domain.PresenceStatus("NAPPING").Valid())
}

func TestDisplayStatus_Online(t *testing.T) {
	s := domain.Session{Online: true, Presence: domain.PresenceAvailable}
	assert.Equal(t, "Online", s.DisplayStatus())

	s.Presence = domain.PresenceAway
	assert.Equal(t, "Away", s.DisplayStatus())

	s.Presence = domain.PresenceBusy
	assert.Equal(t, "Busy", s.DisplayStatus())
}

func TestDisplayStatus_InvisibleReadsAsOffline(t *testing.T) {
	s := domain.Session{Online: true, Presence: domain.PresenceInvisible}
	assert.Equal(t, "Offline", s.DisplayStatus())
}

func TestDisplayStatus_LastSeen(t *testing.T) {
	now := time.Now()

	s := domain.Session{Online: false, LastSeen: now}
	assert.Contains(t, s.DisplayStatus(), "Last seen today at ")

	s.LastSeen = now.AddDate(0, 0, -1)
	assert.Contains(t, s.DisplayStatus(), "Last seen yesterday at ")

	old := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	s.LastSeen = old
	assert.Equal(t, "Last seen 01 Mar 2024, 09:30", s.DisplayStatus())
}
