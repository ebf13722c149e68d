package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sqmw/repofolio/internal/derive"
	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/state"
)

// session holds the views derived from the state store. Bubble Tea copies
// the Model on every update, so anything written from a store listener or a
// timer goroutine lives here behind a pointer.
type session struct {
	topLimit      int
	languageLimit int

	mu          sync.Mutex
	send        func(tea.Msg)
	unsubscribe func()
	derived     derived
}

// derived is one consistent set of views for a single state.
type derived struct {
	state     state.State
	listing   derive.Listing
	languages []derive.LanguageStat
	top       []project.Project
}

func newSession(topLimit, languageLimit int) *session {
	return &session{topLimit: topLimit, languageLimit: languageLimit}
}

// refresh is the store listener. It recomputes every view from s.
func (s *session) refresh(st state.State) {
	d := derived{
		state:     st,
		listing:   derive.Describe(st),
		languages: derive.RankLanguages(st.Projects, s.languageLimit),
		top:       derive.TopStars(st.Projects, s.topLimit),
	}
	s.mu.Lock()
	s.derived = d
	s.mu.Unlock()
}

func (s *session) current() derived {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

func (s *session) bind(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

// dispatch hands msg to the running program. It must not be called from
// inside Update, where Program.Send would block forever.
func (s *session) dispatch(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (s *session) close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
