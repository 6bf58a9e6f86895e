package bot

import "sync"

// State is the conversation position of a single user.
type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingPhone        State = "awaiting_phone"
	StateAwaitingComment      State = "awaiting_comment"
	StateAwaitingCallsign     State = "awaiting_callsign"
	StateAwaitingEmployeeName State = "awaiting_employee_name"
)

type session struct {
	state State
	// phone collected in StateAwaitingPhone, consumed in StateAwaitingComment.
	pendingPhone string
}

// Sessions holds per-user conversation state in memory. State is transient:
// a restart drops everyone back to idle, which is acceptable for this flow.
// The transport may run handlers for different users in parallel, so access
// is guarded by a mutex.
type Sessions struct {
	mu sync.RWMutex
	m  map[int64]*session
}

// NewSessions returns an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]*session)}
}

// State returns the user's current state, StateIdle when unseen.
func (s *Sessions) State(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.m[userID]; ok {
		return sess.state
	}
	return StateIdle
}

// Set moves the user to the given state, keeping scratch data.
func (s *Sessions) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).state = st
}

// SetPendingPhone stashes the normalized phone for the comment step.
func (s *Sessions) SetPendingPhone(userID int64, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).pendingPhone = phone
}

// PendingPhone returns the stashed phone, empty when none.
func (s *Sessions) PendingPhone(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.m[userID]; ok {
		return sess.pendingPhone
	}
	return ""
}

// Reset returns the user to idle and clears scratch data.
func (s *Sessions) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[userID]; ok {
		sess.state = StateIdle
		sess.pendingPhone = ""
	}
}

func (s *Sessions) get(userID int64) *session {
	sess, ok := s.m[userID]
	if !ok {
		sess = &session{state: StateIdle}
		s.m[userID] = sess
	}
	return sess
}
