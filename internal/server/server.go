package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"draw-guess/internal/config"
	"draw-guess/internal/game"
)

// WordCatalog is the admin-facing view of the word pool; every storage
// backend implements it.
type WordCatalog interface {
	AddWord(ctx context.Context, lang, word string) error
	ListWords(ctx context.Context, lang string) ([]game.WordEntry, error)
}

type Server struct {
	svc   *game.Service
	words WordCatalog
	auth  *Tokenizer
	log   zerolog.Logger
}

func New(svc *game.Service, words WordCatalog, cfg config.Config) *Server {
	return &Server{
		svc:   svc,
		words: words,
		auth:  NewTokenizer(cfg),
		log:   log.With().Str("component", "http").Logger(),
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestContext(), cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/games", s.handleCreateGame)
	api.POST("/games/:code/join", s.handleJoinGame)
	api.GET("/games/:code", s.handleGetGame)
	api.POST("/games/:code/start", s.handleStartGame)
	api.POST("/games/:code/savepic", s.handleSubmitDrawing)
	api.POST("/games/:code/pickWord", s.handleSubmitCaption)
	api.POST("/games/:code/guessWord", s.handleSubmitGuess)

	admin := router.Group("/api/admin")
	admin.POST("/word", s.handleAddWord)
	admin.GET("/word", s.handleListWords)

	return router
}

// requestContext tags each request with an id that doubles as the lock-owner
// identity, and logs the request once served.
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := game.WithLockOwner(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		s.log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request served")
	}
}
