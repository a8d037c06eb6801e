package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hooprank/hooprank/controller"
	"github.com/hooprank/hooprank/model"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
}

func NewServer(port int, ctrl controller.C) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"date":     dateFormatter,
				"height":   heightFormatter,
				"year":     yearFormatter,
				"movement": movementFormatter,
				"trend":    trendFormatter,
			},
		},
	})
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("2006-01-02")
}

func heightFormatter(inches int) string {
	ft := inches / 12
	in := inches % 12
	return fmt.Sprintf("%d'%d\"", ft, in)
}

func yearFormatter(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006")
}

// movementFormatter renders a rank change the way the lists print it:
// "+5" for a climb, "-3" for a slide, "—" for no change or a debut.
func movementFormatter(m *int32) string {
	if m == nil || *m == 0 {
		return "—"
	}
	if *m > 0 {
		return fmt.Sprintf("+%d", *m)
	}
	return fmt.Sprintf("%d", *m)
}

func trendFormatter(t model.Trend) string {
	switch t {
	case model.TrendRising:
		return "▲"
	case model.TrendFalling:
		return "▼"
	default:
		return "—"
	}
}
