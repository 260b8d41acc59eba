package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

const DefaultPollInterval = 30 * time.Second

// Session is the authenticated staff user of the console. Workflows receive
// it explicitly and ask it for capabilities with HasRole.
type Session struct {
	client       *apiclient.Client
	store        TokenStore
	pollInterval time.Duration
	onUnread     func(int)

	mu         sync.RWMutex
	user       entities.User
	unread     int
	stopPoller context.CancelFunc
	pollerDone chan struct{}
}

type Option func(*Session)

// WithPollInterval overrides the unread-count refresh interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithUnreadHandler is called with every refreshed unread count.
func WithUnreadHandler(fn func(int)) Option {
	return func(s *Session) {
		s.onUnread = fn
	}
}

func New(client *apiclient.Client, store TokenStore, opts ...Option) *Session {
	s := &Session{client: client, store: store, pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(s)
	}
	client.OnSessionExpired(s.expired)
	return s
}

// Init restores a stored token and validates it against /auth/me. It reports
// whether the session is authenticated; an expired token is discarded.
func (s *Session) Init(ctx context.Context) (bool, error) {
	token, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	s.client.SetToken(token)
	me, err := s.client.Me(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrSessionExpired) {
			return false, nil
		}
		s.client.SetToken("")
		return false, err
	}

	s.start(UserFromResponse(me))
	return true, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (entities.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entities.User{}, apiclient.NewValidationError("email", "el email es obligatorio")
	}
	if password == "" {
		return entities.User{}, apiclient.NewValidationError("password", "la contraseña es obligatoria")
	}

	tok, err := s.client.Login(ctx, email, password)
	if err != nil {
		return entities.User{}, err
	}
	if err := s.store.Save(tok.AccessToken); err != nil {
		logger.WithContext(ctx).Warn("[console][session] token not persisted", zap.Error(err))
	}
	s.client.SetToken(tok.AccessToken)

	user := UserFromResponse(tok.User)
	s.start(user)
	return user, nil
}

// Logout clears the token and stops the poller.
func (s *Session) Logout() {
	s.teardown()
	s.client.SetToken("")
}

// Close stops the poller and keeps the stored token for the next run.
func (s *Session) Close() {
	s.stopPolling()
}

func (s *Session) User() entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.User().ID != ""
}

// HasRole is the single capability check used for both UI gating and operations.
func (s *Session) HasRole(roles ...entities.UserRole) bool {
	return s.Authenticated() && entities.HasRole(s.User(), roles...)
}

// Unread returns the last polled unread notification count.
func (s *Session) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Client returns the API client bound to this session.
func (s *Session) Client() *apiclient.Client {
	return s.client
}

func (s *Session) start(user entities.User) {
	s.stopPolling()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.user = user
	s.unread = 0
	s.stopPoller = cancel
	s.pollerDone = done
	s.mu.Unlock()

	go s.poll(ctx, done)
}

func (s *Session) poll(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		s.refreshUnread(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Session) refreshUnread(ctx context.Context) {
	n, err := s.client.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, apiclient.ErrSessionExpired) {
			logger.Get().Warn("[console][session] unread count failed", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.unread = n
	fn := s.onUnread
	s.mu.Unlock()
	if fn != nil {
		fn(n)
	}
}

// expired runs when the API answers 401. It may run on the poller goroutine,
// so it must not wait for the poller to finish.
func (s *Session) expired() {
	s.mu.Lock()
	cancel := s.stopPoller
	s.stopPoller = nil
	s.pollerDone = nil
	s.user = entities.User{}
	s.unread = 0
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if err := s.store.Clear(); err != nil {
		logger.Get().Warn("[console][session] token not cleared", zap.Error(err))
	}
}

func (s *Session) teardown() {
	s.stopPolling()

	s.mu.Lock()
	s.user = entities.User{}
	s.unread = 0
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		logger.Get().Warn("[console][session] token not cleared", zap.Error(err))
	}
}

func (s *Session) stopPolling() {
	s.mu.Lock()
	cancel, done := s.stopPoller, s.pollerDone
	s.stopPoller, s.pollerDone = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// UserFromResponse converts the API user payload.
func UserFromResponse(u response.UserResponse) entities.User {
	return entities.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      entities.UserRole(u.Role),
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
