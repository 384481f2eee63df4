package render

import (
	"sync"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// Stack is an in-memory Board
type Stack struct {
	mu    sync.Mutex
	cards []*domain.Card
	next  uint
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Insert stores card above every card inserted before it
func (s *Stack) Insert(card *domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	card.ID = s.next
	s.cards = append(s.cards, card)
	return nil
}

// Cards returns the cards, newest first
func (s *Stack) Cards() []*domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Card, 0, len(s.cards))
	for i := len(s.cards) - 1; i >= 0; i-- {
		out = append(out, s.cards[i])
	}
	return out
}
