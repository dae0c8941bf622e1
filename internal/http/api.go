package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sudoku-server/internal/auth"
	"sudoku-server/internal/domain"
	"sudoku-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	games  service.GameService
	tokens *auth.TokenService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, games service.GameService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		games:  games,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogMiddleware(h.logger))

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := router.Group("/")
	authed.Use(h.authMiddleware())
	{
		authed.POST("/save_game", h.saveGame)
		authed.GET("/games", h.listGames)
		authed.GET("/game/:id", h.getGame)
		authed.DELETE("/delete_game/:id", h.deleteGame)
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type saveGameRequest struct {
	BoardState  json.RawMessage `json:"board_state"`
	IsCompleted bool            `json:"is_completed"`
	GameID      *int64          `json:"game_id"`
	ElapsedTime int64           `json:"elapsed_time"`
}

type GameSummaryResponse struct {
	ID          int64  `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	IsCompleted bool   `json:"is_completed"`
	LastPlayed  string `json:"last_played"`
}

type GameDetailResponse struct {
	ID          int64           `json:"id"`
	BoardState  json.RawMessage `json:"board_state"`
	IsCompleted bool            `json:"is_completed"`
	ElapsedTime int64           `json:"elapsed_time"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
			return
		}
		h.internalError(c, "register user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.internalError(c, "authenticate user", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *Handler) saveGame(c *gin.Context) {
	userID := currentUserID(c)

	var req saveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if len(req.BoardState) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "board_state is required"})
		return
	}

	result, err := h.games.Save(c.Request.Context(), userID, req.GameID, req.BoardState, req.IsCompleted, req.ElapsedTime)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		h.internalError(c, "save game", err)
		return
	}

	if result.Created {
		c.JSON(http.StatusCreated, gin.H{"message": "Game saved successfully", "game_id": result.GameID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully", "game_id": result.GameID})
}

func (h *Handler) listGames(c *gin.Context) {
	userID := currentUserID(c)

	games, err := h.games.List(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "list games", err)
		return
	}

	resp := make([]GameSummaryResponse, len(games))
	for i := range games {
		resp[i] = summaryToResponse(games[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getGame(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	game, err := h.games.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		h.internalError(c, "get game", err)
		return
	}

	c.JSON(http.StatusOK, GameDetailResponse{
		ID:          game.ID,
		BoardState:  game.BoardState,
		IsCompleted: game.IsCompleted,
		ElapsedTime: game.ElapsedTime,
	})
}

func (h *Handler) deleteGame(c *gin.Context) {
	userID := currentUserID(c)

	id, ok := gameIDParam(c)
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		h.internalError(c, "delete game", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}

func gameIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid game id"})
		return 0, false
	}
	return id, true
}

func summaryToResponse(game domain.GameSummary) GameSummaryResponse {
	updated := game.UpdatedAt.Format(time.RFC3339)
	return GameSummaryResponse{
		ID:          game.ID,
		CreatedAt:   game.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   updated,
		IsCompleted: game.IsCompleted,
		LastPlayed:  updated,
	}
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.WithError(err).Errorf("%s failed", op)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
