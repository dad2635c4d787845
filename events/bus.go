package events

import "strings"

// Kind names an event stream on a Bus.
type Kind string

const (
	Loaded      Kind = "loaded"
	LoadFailed  Kind = "load failed"
	ClipChanged Kind = "clip changed"
	ClipMissing Kind = "clip missing"
	KeyDown     Kind = "down"
	KeyUp       Kind = "up"
)

// KeyKind returns the per-key kind, e.g. "w down" or "shift up".
func KeyKind(key string, down bool) Kind {
	if down {
		return Kind(strings.ToLower(key) + " " + string(KeyDown))
	}
	return Kind(strings.ToLower(key) + " " + string(KeyUp))
}

// Event is delivered to handlers.
type Event struct {
	Kind    Kind
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Token identifies a subscription for Unsubscribe.
type Token uint64

type subscription struct {
	token   Token
	handler Handler
	once    bool
}

// Bus is a synchronous publish/subscribe hub owned by a single entity.
// Handlers run on the publisher's goroutine in subscription order.
type Bus struct {
	next  Token
	subs  map[Kind][]subscription
	kinds map[Token]Kind
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:  make(map[Kind][]subscription),
		kinds: make(map[Token]Kind),
	}
}

// Subscribe registers h for kind and returns a token for Unsubscribe.
func (b *Bus) Subscribe(kind Kind, h Handler) Token {
	return b.subscribe(kind, h, false)
}

// Once registers h for the next event of kind only.
func (b *Bus) Once(kind Kind, h Handler) Token {
	return b.subscribe(kind, h, true)
}

func (b *Bus) subscribe(kind Kind, h Handler, once bool) Token {
	if b == nil || h == nil {
		return 0
	}
	if b.subs == nil {
		b.subs = make(map[Kind][]subscription)
		b.kinds = make(map[Token]Kind)
	}
	b.next++
	tok := b.next
	b.subs[kind] = append(b.subs[kind], subscription{token: tok, handler: h, once: once})
	b.kinds[tok] = kind
	return tok
}

// Unsubscribe removes a subscription. It reports whether tok was registered.
func (b *Bus) Unsubscribe(tok Token) bool {
	if b == nil || tok == 0 {
		return false
	}
	kind, ok := b.kinds[tok]
	if !ok {
		return false
	}
	delete(b.kinds, tok)

	list := b.subs[kind]
	out := make([]subscription, 0, len(list))
	for _, s := range list {
		if s.token != tok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		delete(b.subs, kind)
	} else {
		b.subs[kind] = out
	}
	return true
}

// Publish delivers payload to every handler subscribed to kind.
func (b *Bus) Publish(kind Kind, payload any) {
	if b == nil {
		return
	}
	list := b.subs[kind]
	if len(list) == 0 {
		return
	}

	// Snapshot so handlers may subscribe or unsubscribe while we iterate.
	snapshot := append([]subscription(nil), list...)
	evt := Event{Kind: kind, Payload: payload}
	for _, s := range snapshot {
		if _, live := b.kinds[s.token]; !live {
			continue
		}
		if s.once {
			b.Unsubscribe(s.token)
		}
		s.handler(evt)
	}
}

// Len returns the number of live subscriptions for kind.
func (b *Bus) Len(kind Kind) int {
	if b == nil {
		return 0
	}
	return len(b.subs[kind])
}
