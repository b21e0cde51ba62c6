package database

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/supabase-community/supabase-go"
	"stylemuse-server/modules/common/config"
)

const userTable = "stylemuse_user"

// Client - Supabase-backed user store
type Client struct {
	supabase *supabase.Client
}

// UserRecord - one row of the user table
type UserRecord struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// NewClient - create the user store client, or nil when Supabase is not
// configured. Callers treat nil as "use the in-memory fallback".
func NewClient(cfg *config.Config) *Client {
	if !cfg.HasSupabase() {
		return nil
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Database] Failed to create Supabase client: %v", err)
		return nil
	}

	log.Println("✅ [Database] Supabase user store initialized")
	return &Client{
		supabase: supabaseClient,
	}
}

// FetchUser - look up a single user by username
func (c *Client) FetchUser(username string) (*UserRecord, error) {
	var users []UserRecord

	data, _, err := c.supabase.From(userTable).
		Select("*", "exact", false).
		Eq("username", username).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", userTable, err)
	}

	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("user not found: %s", username)
	}

	return &users[0], nil
}

// CreateUser - insert a new user row
func (c *Client) CreateUser(username, passwordHash string) error {
	insertData := map[string]interface{}{
		"username":      username,
		"password_hash": passwordHash,
	}

	_, _, err := c.supabase.From(userTable).
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	log.Printf("✅ [Database] User created: %s", username)
	return nil
}
