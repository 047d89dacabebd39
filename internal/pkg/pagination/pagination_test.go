package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()
	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotNil(t, got)
	return got
}

func TestGetParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsFor(t, "/")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		p := paramsFor(t, "/?page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("limit is capped", func(t *testing.T) {
		p := paramsFor(t, "/?limit=500")
		assert.Equal(t, MaxLimit, p.Limit)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		p := paramsFor(t, "/?page=-2&limit=abc")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 35)
	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, int64(35), meta.Total)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 10)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
