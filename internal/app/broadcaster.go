package app

import "sync"

// subscriberBuffer bounds each subscriber channel; large enough to hold
// several whole event batches before the drop-oldest path kicks in.
const subscriberBuffer = 32

// Broadcaster fans events out to all subscribed clients. Deliveries are
// independent: a slow subscriber loses its oldest pending event instead of
// blocking the others, and the events of a single publish reach every
// subscriber in the order they were produced.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a listener. The cancel function is idempotent and
// closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the events to every subscriber, in order.
func (b *Broadcaster) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
				// Full buffer: shed the oldest pending event so the
				// subscriber keeps receiving in order without blocking us.
				select {
				case <-ch:
				default:
				}
				ch <- ev
			}
		}
	}
}
