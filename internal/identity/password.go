package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
)

// PasswordProvider implements email/password auth against the user store.
// Issued tokens are opaque and held in memory, so sign-ins do not survive a
// restart; clients are expected to sign in again.
type PasswordProvider struct {
	users    repositories.UserRepository
	notifier *Notifier

	mu     sync.RWMutex
	tokens map[string]Identity
}

func NewPasswordProvider(users repositories.UserRepository, notifier *Notifier) *PasswordProvider {
	return &PasswordProvider{
		users:    users,
		notifier: notifier,
		tokens:   make(map[string]Identity),
	}
}

func (p *PasswordProvider) SignUp(ctx context.Context, name, email, password string) (Session, error) {
	exists, err := p.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return Session{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return Session{}, err
	}

	return p.issue(Identity{UserID: user.ID, Name: user.Name, Email: user.Email}), nil
}

func (p *PasswordProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := p.users.Update(ctx, user); err != nil {
		return Session{}, err
	}

	return p.issue(Identity{UserID: user.ID, Name: user.Name, Email: user.Email}), nil
}

func (p *PasswordProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	identity, ok := p.tokens[token]
	delete(p.tokens, token)
	p.mu.Unlock()

	if !ok {
		return ErrInvalidToken
	}
	if p.notifier != nil {
		p.notifier.Emit(EventSignedOut, identity)
	}
	return nil
}

// Verify resolves an issued token.
func (p *PasswordProvider) Verify(ctx context.Context, token string) (Identity, error) {
	p.mu.RLock()
	identity, ok := p.tokens[token]
	p.mu.RUnlock()
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return identity, nil
}

func (p *PasswordProvider) issue(identity Identity) Session {
	token := uuid.NewString()
	p.mu.Lock()
	p.tokens[token] = identity
	p.mu.Unlock()

	if p.notifier != nil {
		p.notifier.Emit(EventSignedIn, identity)
	}
	return Session{Identity: identity, Token: token}
}
