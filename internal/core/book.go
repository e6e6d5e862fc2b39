package core

import "github.com/swiftex-io/quilex/internal/domain"

// Filter narrows a book listing. Zero-value fields match everything.
type Filter struct {
	Symbol string
	Side   domain.Side
	Type   domain.OrderType
}

func (f Filter) matches(o *domain.Order) bool {
	if f.Symbol != "" && o.Symbol != f.Symbol {
		return false
	}
	if f.Side != "" && o.Side != f.Side {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	return true
}

// book is an id-keyed order container preserving insertion order. It backs
// both the resting-order book and the tracked-position set; matching walks
// it in insertion order, there is no price-time priority.
type book struct {
	byID map[string]*domain.Order
	seq  []string
}

func newBook() *book {
	return &book{byID: make(map[string]*domain.Order)}
}

func (b *book) add(o *domain.Order) {
	if _, ok := b.byID[o.ID]; !ok {
		b.seq = append(b.seq, o.ID)
	}
	b.byID[o.ID] = o
}

func (b *book) get(id string) (*domain.Order, bool) {
	o, ok := b.byID[id]
	return o, ok
}

func (b *book) remove(id string) {
	if _, ok := b.byID[id]; !ok {
		return
	}
	delete(b.byID, id)
	for i, v := range b.seq {
		if v == id {
			b.seq = append(b.seq[:i], b.seq[i+1:]...)
			break
		}
	}
}

func (b *book) len() int { return len(b.byID) }

// inOrder returns live pointers in insertion order. Callers may remove the
// current entry while iterating the returned slice.
func (b *book) inOrder() []*domain.Order {
	out := make([]*domain.Order, 0, len(b.seq))
	for _, id := range b.seq {
		out = append(out, b.byID[id])
	}
	return out
}

// list returns value copies matching the filter, in insertion order.
func (b *book) list(f Filter) []domain.Order {
	var out []domain.Order
	for _, id := range b.seq {
		if o := b.byID[id]; f.matches(o) {
			out = append(out, *o)
		}
	}
	return out
}

func (b *book) reset() {
	b.byID = make(map[string]*domain.Order)
	b.seq = nil
}
