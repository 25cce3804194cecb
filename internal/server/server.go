// Package server is the web front-end: one page with a question box, the
// answer and the chart drawn for it.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dyike/TickerTalk/internal/dispatch"
)

//go:embed templates
var templateFiles embed.FS

// Asker answers one question.
type Asker interface {
	Ask(ctx context.Context, question string) (*dispatch.Answer, error)
}

type Options struct {
	Addr     string
	ModelID  string
	ChartDir string
	// AskTimeout bounds one question including both inferences.
	AskTimeout time.Duration
}

type Server struct {
	asker  Asker
	opts   Options
	engine *gin.Engine
}

// pageData feeds templates/index.html.
type pageData struct {
	ModelID  string
	Question string
	Answer   string
	ChartURL string
	Failed   bool
}

func New(asker Asker, opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{asker: asker, opts: opts}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.POST("/ask", s.ask)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	if opts.ChartDir != "" {
		r.Static("/charts", opts.ChartDir)
	}

	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{ModelID: s.opts.ModelID})
}

func (s *Server) ask(c *gin.Context) {
	question := strings.TrimSpace(c.PostForm("question"))
	data := pageData{ModelID: s.opts.ModelID, Question: question}
	if question == "" {
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	ctx := c.Request.Context()
	if s.opts.AskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AskTimeout)
		defer cancel()
	}

	answer, err := s.asker.Ask(ctx, question)
	if err != nil {
		log.Printf("[Server] Question failed: %v", err)
		data.Answer = dispatch.FailureMessage
		data.Failed = true
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	data.Answer = answer.Text
	if answer.ChartPath != "" {
		data.ChartURL = "/charts/" + filepath.Base(answer.ChartPath)
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
