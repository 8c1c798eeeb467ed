package unread_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/chathub/internal/unread"
)

func TestIndex_MarkAndSnapshot(t *testing.T) {
	idx := unread.NewIndex()

	idx.MarkUnread("alice", "m1")
	idx.MarkUnread("alice", "m2")
	idx.MarkUnread("bob", "m1")

	assert.ElementsMatch(t, []string{"m1", "m2"}, idx.Snapshot("alice"))
	assert.ElementsMatch(t, []string{"m1"}, idx.Snapshot("bob"))
	assert.Empty(t, idx.Snapshot("carol"))
}

func TestIndex_MarkIsIdempotent(t *testing.T) {
	idx := unread.NewIndex()
	idx.MarkUnread("alice", "m1")
	idx.MarkUnread("alice", "m1")

	assert.Len(t, idx.Snapshot("alice"), 1)
}

func TestIndex_ForgetRemovesFromEverySession(t *testing.T) {
	idx := unread.NewIndex()
	idx.MarkUnread("alice", "m1")
	idx.MarkUnread("bob", "m1")
	idx.MarkUnread("bob", "m2")

	idx.Forget("m1")

	assert.Empty(t, idx.Snapshot("alice"))
	assert.ElementsMatch(t, []string{"m2"}, idx.Snapshot("bob"))
}

func TestIndex_CountsBySender(t *testing.T) {
	idx := unread.NewIndex()
	idx.MarkUnread("alice", "m1")
	idx.MarkUnread("alice", "m2")
	idx.MarkUnread("alice", "m3")

	senders := map[string]string{"m1": "bob", "m2": "bob", "m3": "carol"}
	counts := idx.CountsBySender("alice", func(messageID string) (string, bool) {
		s, ok := senders[messageID]
		return s, ok
	})

	assert.Equal(t, map[string]int{"bob": 2, "carol": 1}, counts)
}

func TestIndex_CountsSkipEvictedMessages(t *testing.T) {
	idx := unread.NewIndex()
	idx.MarkUnread("alice", "m1")
	idx.MarkUnread("alice", "m2")

	// m2 is no longer resolvable, e.g. evicted from history.
	counts := idx.CountsBySender("alice", func(messageID string) (string, bool) {
		if messageID == "m1" {
			return "bob", true
		}
		return "", false
	})

	assert.Equal(t, map[string]int{"bob": 1}, counts)
}

func TestIndex_ConcurrentAccess(t *testing.T) {
	idx := unread.NewIndex()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			idx.MarkUnread("alice", "m1")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			idx.Forget("m1")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			idx.Snapshot("alice")
		}
	}()
	wg.Wait()
}
