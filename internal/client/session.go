package client

import "sync"

// Session owns the admin bearer token for one back-office login. It is the
// single place the token lives: Login fills it, every admin call reads it,
// and any 401 clears it so the next call forces a fresh login.
type Session struct {
	mu    sync.Mutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear drops the token. Called on logout and on any auth failure.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
