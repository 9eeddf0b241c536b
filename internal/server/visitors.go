package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/data/",
	"/api/",
	"/favicon",
	"/healthz",
}

// VisitorLog records page visits with a salted, truncated hash in place of
// the client IP. Nothing is stored; visits only reach the log.
type VisitorLog struct {
	salt   string
	logger *zap.Logger
}

func NewVisitorLog(logger *zap.Logger) (*VisitorLog, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate visitor salt: %w", err)
	}

	return &VisitorLog{
		salt:   hex.EncodeToString(salt),
		logger: logger,
	}, nil
}

// HashIP is stable for the lifetime of the process.
func (v *VisitorLog) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))

	return hex.EncodeToString(sum[:])[:16]
}

func (v *VisitorLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if !tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()

			return
		}

		v.logger.Info("visit",
			zap.String("visitor", v.HashIP(c.ClientIP())),
			zap.String("path", path),
			zap.String("user_agent", c.GetHeader("User-Agent")),
		)

		c.Next()
	}
}

func tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return true
}
