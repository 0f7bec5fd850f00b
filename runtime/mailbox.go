package runtime

import "sync"

// Mailbox is a single-slot guard: at most one inbound message is displayed
// at a time. Claims never block and are never queued.
type Mailbox struct {
	slot chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan struct{}, 1)}
}

// TryClaim takes the slot if it is free. The returned release function frees
// it and may be called more than once.
func (m *Mailbox) TryClaim() (release func(), ok bool) {
	select {
	case m.slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-m.slot })
		}, true
	default:
		return func() {}, false
	}
}

// Busy reports whether a message is being displayed.
func (m *Mailbox) Busy() bool {
	return len(m.slot) == 1
}
