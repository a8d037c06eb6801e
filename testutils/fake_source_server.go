package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed pagedata
var pagedata embed.FS

// FakeSourceServer stands in for the publication that hosts the list pages.
type FakeSourceServer struct {
	s *httptest.Server
}

func NewFakeSourceServer() *FakeSourceServer {
	r := chi.NewRouter()
	r.Route("/nba", func(r chi.Router) {
		r.Get("/top-100-players", top100Handler)
		r.Get("/trade-value-rankings", tradeValueHandler)
		r.Get("/broken", brokenPageHandler)
	})

	return &FakeSourceServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSourceServer) Close() {
	f.s.Close()
}

func (f *FakeSourceServer) URL() string {
	return f.s.URL
}

func (f *FakeSourceServer) Top100URL() string {
	return fmt.Sprintf("%s/nba/top-100-players", f.s.URL)
}

func (f *FakeSourceServer) TradeValueURL() string {
	return fmt.Sprintf("%s/nba/trade-value-rankings", f.s.URL)
}

func top100Handler(w http.ResponseWriter, r *http.Request) {
	servePage(w, "top100.html")
}

func tradeValueHandler(w http.ResponseWriter, r *http.Request) {
	servePage(w, "tradevalue.html")
}

func brokenPageHandler(w http.ResponseWriter, r *http.Request) {
	// a page with no article body, which the parser rejects
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<html><body><p>paywall</p></body></html>"))
}

func servePage(w http.ResponseWriter, name string) {
	b, err := pagedata.ReadFile(fmt.Sprintf("pagedata/%s", name))
	if err != nil {
		log.Printf("error reading pagedata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
