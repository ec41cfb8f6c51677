// Package server exposes the explorer over HTTP: an HTML form for browsers
// and a JSON API.
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel/internal/apperr"
	"travel/internal/metrics"
	"travel/internal/models"
	"travel/internal/render"
	"travel/internal/session"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Explorer interface {
	Explore(ctx context.Context, query string) (*models.Result, error)
}

type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]models.Result, error)
}

type Options struct {
	// Guard defaults to an in-memory guard.
	Guard session.Guard
	// History enables GET /api/history when set.
	History     HistoryLister
	CORSOrigins []string
	Logger      *zap.Logger
}

type Server struct {
	explorer Explorer
	history  HistoryLister
	guard    session.Guard
	logger   *zap.Logger
}

type exploreRequest struct {
	Query string `json:"query" binding:"required"`
}

// New builds the gin engine with every route registered.
func New(explorer Explorer, opts Options) *gin.Engine {
	s := &Server{
		explorer: explorer,
		history:  opts.History,
		guard:    opts.Guard,
		logger:   opts.Logger,
	}
	if s.guard == nil {
		s.guard = session.NewMemoryGuard()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(s.logger))
	engine.Use(cors.New(corsConfig(opts.CORSOrigins)))
	engine.SetHTMLTemplate(render.PageTemplate())

	engine.GET("/", s.handleIndex)
	engine.POST("/", s.handleForm)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/explore", s.handleExplore)
	api.GET("/history", s.handleHistory)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, SessionHeader)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// explore runs query for the calling user. It returns the resulting state
// and the HTTP status that goes with it.
func (s *Server) explore(c *gin.Context, query string) (session.State, int) {
	state, _ := session.State{}.Submit()
	user := sessionKey(c)
	ctx := c.Request.Context()

	acquired, err := s.guard.Acquire(ctx, user)
	if err != nil {
		s.logger.Error("busy flag unavailable", zap.String("session", user), zap.Error(err))
		failure := apperr.Wrap(apperr.KindInternal, "busy flag unavailable", err)
		return state.Fail(failure), apperr.Status(failure)
	}
	if !acquired {
		metrics.RecordOutcome(metrics.OutcomeBusy)
		return state, apperr.Status(apperr.Conflict("a request for this session is already in progress"))
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), user); err != nil {
			s.logger.Warn("failed to release busy flag", zap.String("session", user), zap.Error(err))
		}
	}()

	result, err := s.explorer.Explore(ctx, query)
	if err != nil {
		_ = c.Error(err)
		return state.Fail(err), apperr.Status(err)
	}
	return state.Succeed(result), http.StatusOK
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageName, render.Page{})
}

func (s *Server) handleForm(c *gin.Context) {
	query := c.PostForm("query")
	if strings.TrimSpace(query) == "" {
		c.HTML(http.StatusBadRequest, render.PageName, render.Page{})
		return
	}
	state, status := s.explore(c, query)
	c.HTML(status, render.PageName, render.Page{Query: query, State: state})
}

func (s *Server) handleExplore(c *gin.Context) {
	var req exploreRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, session.State{}.Fail(apperr.Validation("query is required")))
		return
	}
	state, status := s.explore(c, req.Query)
	c.JSON(status, state)
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "search history is not enabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxHistoryLimit)})
			return
		}
		limit = n
	}

	results, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
