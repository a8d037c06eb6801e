package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

type TestController struct {
	Clock       *clock.Mock
	OAuthConfig *oauth2.Config
	fakeSource  *FakeSourceServer
	fakeOAuth   *httptest.Server
}

func (c *TestController) Close() {
	c.fakeSource.Close()
	c.fakeOAuth.Close()
}

func (c *TestController) SourceURL() string {
	return c.fakeSource.URL()
}

func (c *TestController) Top100URL() string {
	return c.fakeSource.Top100URL()
}

func (c *TestController) TradeValueURL() string {
	return c.fakeSource.TradeValueURL()
}

func NewTestController() *TestController {
	fakeOAuthServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"access_token": "access_token",
			"refresh_token": "refresh_token",
			"token_type": "bearer",
			"expires_in": 3600
		}`))
	}))

	fakeOAuthConfig := &oauth2.Config{
		ClientID:     "fakeClientID",
		ClientSecret: "fakeClientSecret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/auth", fakeOAuthServer.URL),
			TokenURL: fmt.Sprintf("%s/token", fakeOAuthServer.URL),
		},
		RedirectURL: fmt.Sprintf("%s/redirect", fakeOAuthServer.URL),
	}
	return &TestController{
		Clock:       clock.NewMock(),
		OAuthConfig: fakeOAuthConfig,
		fakeSource:  NewFakeSourceServer(),
		fakeOAuth:   fakeOAuthServer,
	}
}
