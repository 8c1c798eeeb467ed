package domain

import (
	"fmt"
	"time"
)

// PresenceStatus is the user-selected availability of a session.
type PresenceStatus string

const (
	PresenceAvailable PresenceStatus = "AVAILABLE"
	PresenceAway      PresenceStatus = "AWAY"
	PresenceBusy      PresenceStatus = "BUSY"
	PresenceInvisible PresenceStatus = "INVISIBLE"
)

// Valid reports whether s is one of the known presence values.
func (s PresenceStatus) Valid() bool {
	switch s {
	case PresenceAvailable, PresenceAway, PresenceBusy, PresenceInvisible:
		return true
	}
	return false
}

// Session is one connected (or previously connected) chat participant.
// A session is never deleted: unregistering flips Online to false and
// stamps LastSeen, so the roster keeps a record of everyone it has met.
type Session struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Host           string         `json:"host"`
	ConnectedSince time.Time      `json:"connected_since"`
	Online         bool           `json:"online"`
	Presence       PresenceStatus `json:"presence"`
	StatusMessage  string         `json:"status_message,omitempty"`
	Email          string         `json:"email,omitempty"`
	AvatarBlobID   string         `json:"avatar_blob_id,omitempty"`
	LastSeen       time.Time      `json:"last_seen"`
}

// DisplayStatus renders the presence the way a roster would show it.
// An invisible session reads as offline to everyone else.
func (s Session) DisplayStatus() string {
	if s.Online {
		switch s.Presence {
		case PresenceAway:
			return "Away"
		case PresenceBusy:
			return "Busy"
		case PresenceInvisible:
			return "Offline"
		default:
			return "Online"
		}
	}
	return "Last seen " + s.formatLastSeen(time.Now())
}

func (s Session) formatLastSeen(now time.Time) string {
	ly, lm, ld := s.LastSeen.Date()
	ny, nm, nd := now.Date()
	yy, ym, yd := now.AddDate(0, 0, -1).Date()

	switch {
	case ly == ny && lm == nm && ld == nd:
		return "today at " + s.LastSeen.Format("15:04")
	case ly == yy && lm == ym && ld == yd:
		return "yesterday at " + s.LastSeen.Format("15:04")
	default:
		return s.LastSeen.Format("02 Jan 2006, 15:04")
	}
}

func (s Session) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.ID)
}
