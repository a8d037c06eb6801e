package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hooprank/hooprank/controller"
	"github.com/hooprank/hooprank/db"
	"github.com/hooprank/hooprank/scrape"
	"github.com/hooprank/hooprank/web"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	oauthClientID := os.Getenv("OAUTH_CLIENT_ID")
	oauthClientSecret := os.Getenv("OAUTH_CLIENT_SECRET")
	oauthRedirectURL := os.Getenv("OAUTH_REDIRECT_URL")
	oauthAuthURL := os.Getenv("OAUTH_AUTH_URL")
	oauthTokenURL := os.Getenv("OAUTH_TOKEN_URL")
	editor := os.Getenv("EDITOR_ID")

	// Comma separated list of list page URLs to re-check periodically.
	var sourceURLs []string
	if s := os.Getenv("SOURCE_URLS"); s != "" {
		for _, u := range strings.Split(s, ",") {
			sourceURLs = append(sourceURLs, strings.TrimSpace(u))
		}
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	scrapeClient, err := scrape.New()
	if err != nil {
		log.Fatalf("error creating scrape client: %v", err)
	}

	var oauthConfig *oauth2.Config

	if oauthClientID != "" && oauthClientSecret != "" && oauthRedirectURL != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     oauthClientID,
			ClientSecret: oauthClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  oauthAuthURL,
				TokenURL: oauthTokenURL,
			},
			RedirectURL: oauthRedirectURL,
		}
	}

	ctrl, err := controller.New(clock, scrapeClient, db, oauthConfig, editor, sourceURLs)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Poll the configured list pages every 24-hours to pick up newly
	// published editions. Pages whose published date is already stored are
	// skipped.
	if len(sourceURLs) > 0 {
		wg.Add(1)
		go ctrl.RunPeriodicIngest(24*time.Hour, shutdown, wg)
	}

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
