package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/requestctx"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

const (
	// IdempotencyKeyHeader is the header for the caller's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the replay cache.
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	idempotencyKeyPrefix  = "splitpay:idempotency:"
	defaultIdempotencyTTL = 24 * time.Hour
	idempotencyLockTTL    = 30 * time.Second
)

// IdempotencyConfig holds idempotency middleware configuration.
type IdempotencyConfig struct {
	TTL    time.Duration
	Logger *zap.Logger
}

type idempotencyResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type idempotencyResponseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency propagates the Idempotency-Key header into the request context
// and, when Redis is available, replays the stored response for repeated keys.
// Server errors are not cached so a retry reaches the handler again.
func Idempotency(redis goredis.UniversalClient, cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL == 0 {
		cfg.TTL = defaultIdempotencyTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	log := cfg.Logger.Named("idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(requestctx.WithIdempotencyKey(c.Request.Context(), key))

		if redis == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c, key)

		if cached, err := getCachedResponse(ctx, redis, cacheKey); err == nil {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		} else if err != goredis.Nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		lockKey := cacheKey + ":lock"
		locked, err := redis.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			c.AbortWithStatusJSON(http.StatusConflict, response.ErrorResponse{
				Error: "a request with this idempotency key is already being processed",
				Code:  "REQUEST_IN_PROGRESS",
			})
			return
		}
		defer redis.Del(context.WithoutCancel(ctx), lockKey)

		writer := &idempotencyResponseWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusInternalServerError {
			return
		}
		resp := &idempotencyResponse{
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := cacheResponse(context.WithoutCancel(ctx), redis, cacheKey, resp, cfg.TTL); err != nil {
			log.Warn("idempotency store failed", zap.Error(err))
		}
	}
}

func idempotencyCacheKey(c *gin.Context, key string) string {
	hash := sha256.Sum256([]byte(c.Request.Method + ":" + c.FullPath() + ":" + key))
	return idempotencyKeyPrefix + hex.EncodeToString(hash[:])
}

func getCachedResponse(ctx context.Context, redis goredis.UniversalClient, key string) (*idempotencyResponse, error) {
	data, err := redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var resp idempotencyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func cacheResponse(ctx context.Context, redis goredis.UniversalClient, key string, resp *idempotencyResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return redis.Set(ctx, key, data, ttl).Err()
}
