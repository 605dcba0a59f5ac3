package http

import (
	"net/http"
	"time"

	"github.com/aq2208/gorder-workflow/configs"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TokenHandler struct {
	cfg     configs.Security
	clients security.Clients
	now     func() time.Time
}

func NewTokenHandler(cfg configs.Security, clients security.Clients) *TokenHandler {
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	return &TokenHandler{cfg: cfg, clients: clients, now: time.Now}
}

// POST /v1/token (form)
// Accepts: client_id, client_secret
func (h *TokenHandler) IssueToken(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	if clientID == "" || clientSecret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid client"})
		return
	}

	cl, ok := h.clients.Authenticate(clientID, clientSecret)
	if !ok {
		logging.From(c).Warn("token refused", "client_id", clientID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid client"})
		return
	}

	now := h.now()
	claims := jwt.MapClaims{
		"iss":      h.cfg.Issuer,   // issuer
		"aud":      h.cfg.Audience, // audience
		"iat":      now.Unix(),     // issued at
		"nbf":      now.Unix(),     // not before
		"exp":      now.Add(h.cfg.TTL).Unix(),
		"clientID": cl.ID,
		"perms":    cl.Perms,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int64(h.cfg.TTL.Seconds()),
	})
}
