package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type gadget struct {
	ID     string `gorm:"primaryKey"`
	Serial string `gorm:"uniqueIndex"`
	Kind   string
	Price  float64
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&gadget{}))
	return New(db)
}

func TestGatewayCRUD(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, gw.Insert(ctx, &gadget{ID: "g1", Serial: "s1", Kind: "drill", Price: 10}))

	t.Run("get by id", func(t *testing.T) {
		var got gadget
		require.NoError(t, gw.Get(ctx, &got, "g1"))
		assert.Equal(t, "drill", got.Kind)
	})

	t.Run("missing ids return ErrNotFound", func(t *testing.T) {
		var got gadget
		assert.ErrorIs(t, gw.Get(ctx, &got, "nope"), ErrNotFound)
	})

	t.Run("duplicate unique keys return ErrDuplicate", func(t *testing.T) {
		err := gw.Insert(ctx, &gadget{ID: "g2", Serial: "s1", Kind: "saw"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("update fields patches and reports misses", func(t *testing.T) {
		require.NoError(t, gw.UpdateFields(ctx, &gadget{}, "g1", map[string]interface{}{"price": 20}))

		var got gadget
		require.NoError(t, gw.Get(ctx, &got, "g1"))
		assert.Equal(t, 20.0, got.Price)

		assert.ErrorIs(t, gw.UpdateFields(ctx, &gadget{}, "nope", map[string]interface{}{"price": 1}), ErrNotFound)
	})

	t.Run("delete removes and reports misses", func(t *testing.T) {
		require.NoError(t, gw.Insert(ctx, &gadget{ID: "tmp", Serial: "tmp"}))
		require.NoError(t, gw.Delete(ctx, &gadget{}, "tmp"))
		assert.ErrorIs(t, gw.Delete(ctx, &gadget{}, "tmp"), ErrNotFound)
	})
}

func TestGatewayList(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	seed := []gadget{
		{ID: "a", Serial: "sa", Kind: "drill", Price: 10},
		{ID: "b", Serial: "sb", Kind: "drill", Price: 30},
		{ID: "c", Serial: "sc", Kind: "drill", Price: 20},
		{ID: "d", Serial: "sd", Kind: "saw", Price: 5},
	}
	for i := range seed {
		require.NoError(t, gw.Insert(ctx, &seed[i]))
	}

	t.Run("filters and sorts", func(t *testing.T) {
		var got []gadget
		total, err := gw.List(ctx, &got, ListOptions{
			Filters: []Filter{Eq("kind", "drill")},
			SortBy:  "price",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[2].ID)
	})

	t.Run("total ignores pagination", func(t *testing.T) {
		var got []gadget
		total, err := gw.List(ctx, &got, ListOptions{
			Filters: []Filter{Eq("kind", "drill")},
			SortBy:  "price",
			Desc:    true,
			Page:    2,
			Limit:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("in and neq filters", func(t *testing.T) {
		var got []gadget
		total, err := gw.List(ctx, &got, ListOptions{
			Filters: []Filter{
				In("id", []string{"a", "b", "d"}),
				Neq("kind", "saw"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("count", func(t *testing.T) {
		total, err := gw.Count(ctx, &gadget{}, Eq("kind", "saw"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}
