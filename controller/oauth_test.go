package controller

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hooprank/hooprank/scrape"
	"github.com/itbasis/go-clock"
)

func TestOAuthFlow(t *testing.T) {
	ctx := context.Background()

	ctrl, testCtrl := controllerForTest()
	defer testCtrl.Close()

	authURL, err := ctrl.OAuthStart()
	state := validateOAuthStart(t, authURL, err)

	// The sign-in is not a session until the code has been exchanged.
	if ctrl.SessionValid(state) {
		t.Error("state should not be a valid session before the exchange")
	}

	if err := ctrl.OAuthExchange(ctx, state, "code"); err != nil {
		t.Fatalf("unexpected error in OAuthExchange: %v", err)
	}

	if !ctrl.SessionValid(state) {
		t.Error("expected a valid session after the exchange")
	}
	if ctrl.SessionValid("some-other-state") {
		t.Error("unknown state should never be a valid session")
	}

	// The exchanged token is stored for the editor.
	if !ctrl.EditorSignedIn(ctx) {
		t.Error("expected the editor to be signed in after the exchange")
	}

	// Sessions expire.
	testCtrl.Clock.Add(13 * time.Hour)
	if ctrl.SessionValid(state) {
		t.Error("session should have expired")
	}
}

func TestOAuthStart_notConfigured(t *testing.T) {
	scrapeClient, err := scrape.New()
	if err != nil {
		t.Fatalf("error getting scrape client: %v", err)
	}

	ctrl, err := New(clock.New(), scrapeClient, testDB.DB, nil, "", nil)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}

	if _, err := ctrl.OAuthStart(); err == nil {
		t.Fatal("expected an error but did not get one")
	}
}

func TestOAuth_stateExpired(t *testing.T) {
	ctx := context.Background()

	ctrl, testCtrl := controllerForTest()
	defer testCtrl.Close()

	authURL, err := ctrl.OAuthStart()
	state := validateOAuthStart(t, authURL, err)

	testCtrl.Clock.Add(6 * time.Minute)
	err = ctrl.OAuthExchange(ctx, state, "code")
	if err == nil || err.Error() != "state is not valid" {
		t.Errorf("expected error but got wrong value: %v", err)
	}
}

func validateOAuthStart(t *testing.T, auth string, err error) string {
	if err != nil {
		t.Fatalf("unexpected error in OAuthStart: %v", err)
	}
	if !strings.Contains(auth, "/auth") {
		t.Errorf("expected url to have a specific prefix, got: %s", auth)
	}

	u, err := url.Parse(auth)
	if err != nil {
		t.Fatalf("error parsing authURL: %v", err)
	}
	state := u.Query().Get("state")
	if state == "" {
		t.Fatalf("no state encoded in authURL: %s", auth)
	}

	return state
}
