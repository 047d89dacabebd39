package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"libradesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
const provisionalLockTTL = 60 * time.Second

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

// Idempotency prevents duplicate processing of mutating requests.
// Clients send a unique X-Idempotency-Key; a replayed key returns the
// stored response instead of executing the handler again. The key is
// scoped to method + path + authenticated user.
//
// When rdb is nil the middleware is a pass-through (no REDIS_ADDR configured).
func Idempotency(rdb *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		// Only enforce on mutating methods
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		reqKey := c.Get("X-Idempotency-Key")
		if reqKey == "" {
			// Header is optional; without it the request is processed normally
			return c.Next()
		}

		userID, _ := c.Locals("userID").(uint)
		key := fmt.Sprintf("idemp:%s:%s:%d:%s", c.Method(), c.Path(), userID, reqKey)

		sum := sha256.Sum256(c.Body())
		bhash := hex.EncodeToString(sum[:])

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		entry := idempEntry{
			InProgress: true,
			BodySHA256: bhash,
			CreatedAt:  time.Now().UTC(),
		}
		raw, _ := json.Marshal(entry)

		ok, err := rdb.SetNX(ctx, key, raw, provisionalLockTTL).Result()
		if err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "Idempotency store unavailable")
		}
		if !ok {
			// Key exists: body must match, and we may be able to replay
			cur, errLoad := loadEntry(ctx, rdb, key)
			if errLoad != nil {
				return response.Error(c, fiber.StatusServiceUnavailable, "Idempotency store unavailable")
			}
			if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
				return response.Conflict(c, "Idempotency key reused with a different request body")
			}
			if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Status(cur.Code).Send(cur.Body)
			}
			return response.Conflict(c, "Request is already in progress")
		}

		// Execute the handler and record the final response for replay
		if err := c.Next(); err != nil {
			// Free the lock so the client can retry after a handler error
			rdb.Del(context.Background(), key)
			return err
		}

		final := idempEntry{
			InProgress: false,
			Code:       c.Response().StatusCode(),
			Body:       append([]byte(nil), c.Response().Body()...),
			BodySHA256: bhash,
			CreatedAt:  time.Now().UTC(),
		}
		rawFinal, _ := json.Marshal(final)
		rdb.Set(context.Background(), key, rawFinal, ttl)

		return nil
	}
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var entry idempEntry
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, err
	}
	return entry, nil
}
