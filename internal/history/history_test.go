package history_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/chathub/internal/domain"
	"github.com/nfrund/chathub/internal/history"
)

func message(id, content string) domain.Message {
	return domain.Message{ID: id, Content: content, Type: domain.TypeText}
}

func TestLog_AppendAndGet(t *testing.T) {
	log := history.NewLog(10)

	evicted := log.Append(message("m1", "hello"))
	assert.Empty(t, evicted, "no eviction below capacity")

	got, ok := log.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Content)

	_, ok = log.Get("missing")
	assert.False(t, ok)
}

func TestLog_OrderIsOldestFirst(t *testing.T) {
	log := history.NewLog(10)
	for i := 0; i < 5; i++ {
		log.Append(message(fmt.Sprintf("m%d", i), ""))
	}

	all := log.All()
	require.Len(t, all, 5)
	for i, m := range all {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.ID)
	}
}

func TestLog_EvictsOldestAtCapacity(t *testing.T) {
	log := history.NewLog(3)
	log.Append(message("m1", ""))
	log.Append(message("m2", ""))
	log.Append(message("m3", ""))

	evicted := log.Append(message("m4", ""))
	assert.Equal(t, "m1", evicted)
	assert.Equal(t, 3, log.Len())

	_, ok := log.Get("m1")
	assert.False(t, ok, "evicted message must not be retrievable")
	_, ok = log.Get("m4")
	assert.True(t, ok)

	all := log.All()
	assert.Equal(t, "m2", all[0].ID)
	assert.Equal(t, "m4", all[2].ID)
}

func TestLog_UpdateReturnsImmutableSnapshot(t *testing.T) {
	log := history.NewLog(10)
	msg := message("m1", "original")
	msg.Reactions = []domain.Reaction{{UserID: "u1", Type: "👍"}}
	log.Append(msg)

	updated, ok := log.Update("m1", func(m *domain.Message) {
		m.Status = domain.StatusRead
	})
	require.True(t, ok)
	assert.Equal(t, domain.StatusRead, updated.Status)

	// Mutating the returned snapshot must not leak into the log.
	updated.Content = "tampered"
	updated.Reactions[0].Type = "👎"

	stored, ok := log.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "original", stored.Content)
	assert.Equal(t, "👍", stored.Reactions[0].Type)
}

func TestLog_UpdateUnknownID(t *testing.T) {
	log := history.NewLog(10)
	_, ok := log.Update("missing", func(m *domain.Message) { m.Status = domain.StatusRead })
	assert.False(t, ok)
}

func TestLog_ConcurrentAppends(t *testing.T) {
	log := history.NewLog(5000)

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				log.Append(message(fmt.Sprintf("w%d-m%d", w, i), ""))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 2000, log.Len())
}

func TestLog_ConcurrentReadersAndWriters(t *testing.T) {
	log := history.NewLog(100)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			log.Append(message(fmt.Sprintf("m%d", i), ""))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			log.All()
			log.Get(fmt.Sprintf("m%d", i))
		}
	}()
	wg.Wait()

	assert.Equal(t, 100, log.Len())
}

func TestNewLog_PanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { history.NewLog(0) })
	assert.Panics(t, func() { history.NewLog(-1) })
}
