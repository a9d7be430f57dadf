package identity

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Session pairs an identity with its bearer token.
type Session struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

// Provider handles account creation and credential sign-in.
type Provider interface {
	SignUp(ctx context.Context, name, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
}

// Verifier resolves a bearer token to an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AuthEvent names an auth-state transition.
type AuthEvent string

const (
	EventSignedIn  AuthEvent = "signed_in"
	EventSignedOut AuthEvent = "signed_out"
)

// Notifier fans auth-state changes out to subscribers. Subscribe returns an
// unsubscribe func; callbacks run synchronously on the emitting goroutine.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(AuthEvent, Identity)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(AuthEvent, Identity))}
}

func (n *Notifier) Subscribe(fn func(AuthEvent, Identity)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Notifier) Emit(event AuthEvent, identity Identity) {
	n.mu.Lock()
	fns := make([]func(AuthEvent, Identity), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(event, identity)
	}
}
