package middleware

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/logger"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// MaxInteractionBody caps the size of an interaction payload
const MaxInteractionBody = 1 << 20

// ErrInvalidPublicKey is returned for malformed application public keys
var ErrInvalidPublicKey = errors.New("application public key must be 64 hex characters")

// ParsePublicKey decodes the hex application public key shown in the
// developer portal
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return ed25519.PublicKey(raw), nil
}

// VerifySignature rejects requests whose X-Signature-Ed25519 header does not
// sign timestamp+body with key. The body stays readable for the next handler.
func VerifySignature(key ed25519.PublicKey, log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				model.NewMethodNotAllowedError(http.MethodPost).WriteJSON(w)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, MaxInteractionBody)
			if !discordgo.VerifyInteraction(r, key) {
				log.Warn("interaction signature rejected",
					zap.String(logger.FieldRequestID, GetRequestID(r.Context())),
					zap.String("remote_addr", r.RemoteAddr),
				)
				model.NewInvalidSignatureError().WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
