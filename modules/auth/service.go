package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"stylemuse-server/modules/common/config"
	"stylemuse-server/modules/common/database"
	redisutil "stylemuse-server/modules/common/redis"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
)

const sessionKeyPrefix = "session:"

// Service - user registration and login sessions. Users live in Supabase and
// sessions in Redis when those backends are configured; otherwise both fall
// back to in-memory maps, which is enough for a single-instance deployment.
type Service struct {
	redis *redis.Client
	db    *database.Client
	ttl   time.Duration

	mu       sync.RWMutex
	users    map[string]string // username -> bcrypt hash
	sessions map[string]*session
}

// NewService - build the auth service from configuration
func NewService(cfg *config.Config) *Service {
	return NewServiceWithClients(redisutil.Connect(cfg), database.NewClient(cfg), time.Duration(cfg.SessionTTLHours)*time.Hour)
}

// NewServiceWithClients - dependency-injected constructor; either client may be nil
func NewServiceWithClients(rdb *redis.Client, db *database.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		redis:    rdb,
		db:       db,
		ttl:      ttl,
		users:    make(map[string]string),
		sessions: make(map[string]*session),
	}
}

// Register - create a new user with a bcrypt-hashed password
func (s *Service) Register(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if s.db != nil {
		if _, err := s.db.FetchUser(username); err == nil {
			return ErrUserExists
		}
		return s.db.CreateUser(username, string(hash))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrUserExists
	}
	s.users[username] = string(hash)
	log.Printf("👤 [Auth] User registered: %s", username)
	return nil
}

// Login - verify credentials and open a session, returning the opaque token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	hash, found := s.passwordHash(username)
	if !found {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()

	if s.redis != nil {
		if err := s.redis.Set(ctx, sessionKeyPrefix+token, username, s.ttl).Err(); err != nil {
			return "", err
		}
	} else {
		now := time.Now()
		s.mu.Lock()
		s.sessions[token] = &session{username: username, createdAt: now, lastSeen: now}
		s.mu.Unlock()
	}

	log.Printf("✅ [Auth] User logged in: %s", username)
	return token, nil
}

// Logout - drop the session for the given token
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Printf("⚠️  [Auth] Failed to delete session: %v", err)
		}
		return
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Validate - resolve a session token to its username
func (s *Service) Validate(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}

	if s.redis != nil {
		username, err := s.redis.Get(ctx, sessionKeyPrefix+token).Result()
		if err != nil {
			return "", false
		}
		// sliding expiration
		s.redis.Expire(ctx, sessionKeyPrefix+token, s.ttl)
		return username, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[token]
	if !exists {
		return "", false
	}
	if time.Since(sess.lastSeen) > s.ttl {
		delete(s.sessions, token)
		return "", false
	}
	sess.lastSeen = time.Now()
	return sess.username, true
}

// passwordHash - fetch the stored hash from Supabase or the in-memory map
func (s *Service) passwordHash(username string) (string, bool) {
	if s.db != nil {
		record, err := s.db.FetchUser(username)
		if err != nil {
			return "", false
		}
		return record.PasswordHash, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, found := s.users[username]
	return hash, found
}

// StartCleanupRoutine - sweep stale in-memory sessions every 5 minutes.
// Redis sessions expire on their own via TTL.
func (s *Service) StartCleanupRoutine() {
	if s.redis != nil {
		return
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			s.sweepSessions()
		}
	}()

	log.Printf("🔄 [Auth] Started session cleanup routine (every 5min, TTL %v)", s.ttl)
}

// sweepSessions - remove sessions idle past the TTL
func (s *Service) sweepSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleaned := 0
	for token, sess := range s.sessions {
		if time.Since(sess.lastSeen) > s.ttl {
			delete(s.sessions, token)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("🧹 [Auth] Cleaned up %d expired sessions (active: %d)", cleaned, len(s.sessions))
	}
}
