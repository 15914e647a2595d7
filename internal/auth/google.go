package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"deckgen-backend/internal/shared/server/respond"
)

// GoogleService exposes the OAuth client configuration clients need to
// run the consent flow themselves. Token acquisition happens entirely
// client-side; the server only ever sees delegated access tokens.
type GoogleService struct {
	clientID string
}

// NewGoogleService builds a GoogleService.
func NewGoogleService(clientID string) *GoogleService {
	return &GoogleService{clientID: strings.TrimSpace(clientID)}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/config", s.config)
}

// An empty client id means Docs import and Slides export are
// unavailable; clients hide those features.
func (s *GoogleService) config(c *gin.Context) {
	respond.OK(c, gin.H{
		"clientId": s.clientID,
		"enabled":  s.clientID != "",
	})
}
