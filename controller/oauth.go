package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hooprank/hooprank/db"
	"golang.org/x/oauth2"
)

// A started sign-in attempt gets 5 minutes to come back through the
// redirect; a completed session lasts 12 hours.
const (
	loginWindow   = 5 * time.Minute
	sessionWindow = 12 * time.Hour
)

type oauthState struct {
	expiry time.Time
	token  *oauth2.Token
}

func (c *controller) OAuthStart() (string, error) {
	if c.oauthConfig == nil {
		return "", errors.New("editor sign-in is not configured")
	}

	state := generateRandomState()
	url := c.oauthConfig.AuthCodeURL(state)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.oauthStates[state] = &oauthState{
		expiry: c.clock.Now().Add(loginWindow),
	}
	return url, nil
}

func (c *controller) OAuthExchange(ctx context.Context, state, code string) error {
	c.mu.Lock()
	s, ok := c.oauthStates[state]
	c.mu.Unlock()
	if !ok || c.clock.Now().After(s.expiry) {
		return errors.New("state is not valid")
	}

	if c.oauthConfig == nil {
		return errors.New("editor sign-in is not configured")
	}

	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging code: %w", err)
	}

	c.mu.Lock()
	s.token = token
	s.expiry = c.clock.Now().Add(sessionWindow)
	c.mu.Unlock()

	return c.db.SaveToken(ctx, c.editor, token)
}

// SessionValid reports whether the state cookie identifies a completed,
// unexpired sign-in.
func (c *controller) SessionValid(state string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.oauthStates[state]
	return ok && s.token != nil && c.clock.Now().Before(s.expiry)
}

// EditorSignedIn reports whether the editor has a usable stored token. When
// the access token has expired but a refresh token exists, the token is
// refreshed and saved back.
func (c *controller) EditorSignedIn(ctx context.Context) bool {
	t, err := c.db.GetToken(ctx, c.editor)
	if err != nil {
		if !errors.Is(err, db.ErrTokenNotFound) {
			log.Printf("error reading editor token: %v", err)
		}
		return false
	}

	if t.Expiry.After(c.clock.Now()) {
		return true
	}
	if t.RefreshToken == "" || c.oauthConfig == nil {
		return false
	}

	// We must manually refresh the token in order to be able to save it
	// back. oauthConfig.Client(ctx, t) refreshes in the background but never
	// gives us access to the new token.
	tknSrc := c.oauthConfig.TokenSource(ctx, t)
	t, err = tknSrc.Token()
	if err != nil {
		log.Printf("error refreshing editor token: %v", err)
		return false
	}

	if err := c.db.SaveToken(ctx, c.editor, t); err != nil {
		log.Printf("error saving refreshed editor token: %v", err)
	}
	return true
}

func generateRandomState() string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	b := make([]rune, 15)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
