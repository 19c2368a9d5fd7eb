package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationLocksMutualExclusion(t *testing.T) {
	l := NewConversationLocks()
	var n, max int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("c1")
			mu.Lock()
			n++
			if n > max {
				max = n
			}
			mu.Unlock()
			mu.Lock()
			n--
			mu.Unlock()
			l.Unlock("c1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, max)
}

func TestConversationLocksIndependentConversations(t *testing.T) {
	l := NewConversationLocks()
	l.Lock("a")
	done := make(chan struct{})
	go func() {
		l.Lock("b") // 不应被a阻塞
		l.Unlock("b")
		close(done)
	}()
	<-done
	l.Unlock("a")
}

func TestConversationLocksGC(t *testing.T) {
	l := NewConversationLocks()
	l.Lock("c")
	l.Unlock("c")
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}
