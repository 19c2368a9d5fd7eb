package chat

import "sync"

// ConversationLocks 会话级互斥
// 同一会话同时只允许一轮对话进行, 避免历史读取和消息索引交错
// 引用计数保证空闲会话的条目会被回收
type ConversationLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewConversationLocks() *ConversationLocks {
	return &ConversationLocks{entries: make(map[string]*lockEntry)}
}

func (l *ConversationLocks) Lock(cid string) {
	l.mu.Lock()
	e, ok := l.entries[cid]
	if !ok {
		e = &lockEntry{}
		l.entries[cid] = e
	}
	e.refs++
	l.mu.Unlock()
	e.mu.Lock()
}

func (l *ConversationLocks) Unlock(cid string) {
	l.mu.Lock()
	e := l.entries[cid]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, cid)
	}
	l.mu.Unlock()
	e.mu.Unlock()
}
