package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"draw-guess/internal/game"
)

type createGameRequest struct {
	User  string `json:"user" binding:"required"`
	Lang  string `json:"lang" binding:"required"`
	Score int    `json:"score" binding:"required,min=1"`
}

type userRequest struct {
	User string `json:"user" binding:"required"`
}

type savePicRequest struct {
	User string `json:"user" binding:"required"`
	Pic  string `json:"pic" binding:"required"`
}

type wordActionRequest struct {
	User string `json:"user" binding:"required"`
	Word string `json:"word" binding:"required"`
}

type addWordRequest struct {
	Lang string `json:"lang" binding:"required"`
	Word string `json:"word" binding:"required"`
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if !s.bind(c, &req) {
		return
	}
	code, err := s.svc.CreateGame(c.Request.Context(), req.User, req.Score, req.Lang)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	token, err := s.auth.Create(code, req.User)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, gin.H{"code": code, "token": token})
}

func (s *Server) handleJoinGame(c *gin.Context) {
	var req userRequest
	if !s.bind(c, &req) {
		return
	}
	code := c.Param("code")
	if err := s.svc.JoinGame(c.Request.Context(), code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	token, err := s.auth.Create(code, req.User)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, gin.H{"token": token})
}

func (s *Server) handleGetGame(c *gin.Context) {
	code := c.Param("code")
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": "user is required"})
		return
	}
	if err := s.authenticate(c, code, user); err != nil {
		s.respondErr(c, err)
		return
	}
	view, err := s.svc.GetGameView(c.Request.Context(), code, user)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, view)
}

func (s *Server) handleStartGame(c *gin.Context) {
	var req userRequest
	if !s.bind(c, &req) {
		return
	}
	code := c.Param("code")
	if err := s.authenticate(c, code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	if err := s.svc.StartGame(c.Request.Context(), code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, nil)
}

func (s *Server) handleSubmitDrawing(c *gin.Context) {
	var req savePicRequest
	if !s.bind(c, &req) {
		return
	}
	code := c.Param("code")
	if err := s.authenticate(c, code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	if err := s.svc.SubmitDrawing(c.Request.Context(), code, req.User, req.Pic); err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, nil)
}

func (s *Server) handleSubmitCaption(c *gin.Context) {
	var req wordActionRequest
	if !s.bind(c, &req) {
		return
	}
	code := c.Param("code")
	if err := s.authenticate(c, code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	if err := s.svc.SubmitCaption(c.Request.Context(), code, req.User, req.Word); err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, nil)
}

func (s *Server) handleSubmitGuess(c *gin.Context) {
	var req wordActionRequest
	if !s.bind(c, &req) {
		return
	}
	code := c.Param("code")
	if err := s.authenticate(c, code, req.User); err != nil {
		s.respondErr(c, err)
		return
	}
	if err := s.svc.SubmitGuess(c.Request.Context(), code, req.User, req.Word); err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, nil)
}

func (s *Server) handleAddWord(c *gin.Context) {
	var req addWordRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.words.AddWord(c.Request.Context(), req.Lang, req.Word); err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, nil)
}

func (s *Server) handleListWords(c *gin.Context) {
	words, err := s.words.ListWords(c.Request.Context(), c.Query("lang"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondOK(c, words)
}

func (s *Server) bind(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return false
	}
	return true
}

func (s *Server) authenticate(c *gin.Context, code, user string) error {
	return s.auth.Authenticate(c.GetHeader("Authorization"), code, user)
}

// respondOK and respondErr render the success-or-failure envelope every
// mutating endpoint shares: code 0 with data, or a negative machine-readable
// code with a hint.
func (s *Server) respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
}

func (s *Server) respondErr(c *gin.Context, err error) {
	var coded *game.Error
	if errors.As(err, &coded) {
		c.JSON(http.StatusOK, gin.H{"code": coded.Code, "hint": coded.Message})
		return
	}
	s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
	c.JSON(http.StatusInternalServerError, gin.H{"code": -500, "hint": "internal error"})
}
