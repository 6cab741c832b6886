package client

import "sync"

// tokenStore, token çiftini goroutine-safe saklar.
//
// Neden ayrı bir struct? Do() ve refreshTokens() farklı goroutine'lerden
// aynı anda okuyup yazabilir — mutex'i tek yerde toplamak data race'i
// imkansızlaştırır.
type tokenStore struct {
	mu     sync.RWMutex
	tokens TokenPair
}

func (s *tokenStore) get() TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *tokenStore) set(tokens TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
}
