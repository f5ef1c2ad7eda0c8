package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/draft"
	"cartline/internal/domain/orderline"
)

func setupRepo(t *testing.T, ttl time.Duration) (*DraftRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	repo, err := NewDraftRepository(client, ttl)
	require.NoError(t, err)
	return repo, mr
}

func draftWithLines(t *testing.T, n int) *draft.Draft {
	t.Helper()

	d := draft.NewDraft(orderline.ModeSale)
	for i := 0; i < n; i++ {
		p := product.New(fmt.Sprintf("SKU-%03d", i), fmt.Sprintf("Product %d with a reasonably long display name", i), 24)
		li, err := orderline.Build(p, orderline.AddInput{
			Cartons: 2,
			Pieces:  3,
			Price:   types.MustMoney("12.50"),
		}, orderline.ModeSale, nil, d.Lines)
		require.NoError(t, err)
		require.NoError(t, d.Lines.Append(li))
	}
	return d
}

func TestDraftSaveGetRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	d := draftWithLines(t, 2)
	require.NoError(t, repo.Save(ctx, d))

	loaded, err := repo.Get(ctx, d.ID)
	require.NoError(t, err)

	assert.Equal(t, d.ID, loaded.ID)
	assert.Equal(t, d.Mode, loaded.Mode)
	assert.Equal(t, 2, loaded.Lines.Len())
	assert.True(t, loaded.Lines.Totals().Subtotal.Equal(d.Lines.Totals().Subtotal))
}

func TestDraftLargePayloadCompressed(t *testing.T) {
	repo, mr := setupRepo(t, time.Hour)
	ctx := context.Background()

	d := draftWithLines(t, 40)
	require.NoError(t, repo.Save(ctx, d))

	// The stored value must carry the zstd frame header, not raw JSON.
	stored, err := mr.Get(draftKeyPrefix + d.ID.String())
	require.NoError(t, err)
	require.Greater(t, len(stored), len(zstdMagic))
	assert.Equal(t, string(zstdMagic), stored[:len(zstdMagic)])

	loaded, err := repo.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Lines.Len())
	assert.True(t, loaded.Lines.Totals().Subtotal.Equal(d.Lines.Totals().Subtotal))
}

func TestDraftSmallPayloadStoredRaw(t *testing.T) {
	repo, mr := setupRepo(t, time.Hour)
	ctx := context.Background()

	d := draft.NewDraft(orderline.ModePurchase)
	require.NoError(t, repo.Save(ctx, d))

	stored, err := mr.Get(draftKeyPrefix + d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, byte('{'), stored[0])
}

func TestDraftGetUnknownID(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)

	_, err := repo.Get(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestDraftExpiresAfterTTL(t *testing.T) {
	repo, mr := setupRepo(t, time.Minute)
	ctx := context.Background()

	d := draft.NewDraft(orderline.ModeSale)
	require.NoError(t, repo.Save(ctx, d))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, d.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDraftDelete(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	d := draft.NewDraft(orderline.ModeSale)
	require.NoError(t, repo.Save(ctx, d))
	require.NoError(t, repo.Delete(ctx, d.ID))

	_, err := repo.Get(ctx, d.ID)
	assert.True(t, apperror.IsNotFound(err))

	// Deleting a missing draft is not an error.
	assert.NoError(t, repo.Delete(ctx, d.ID))
}

func TestDraftSaveRefreshesTTL(t *testing.T) {
	repo, mr := setupRepo(t, time.Minute)
	ctx := context.Background()

	d := draft.NewDraft(orderline.ModeSale)
	require.NoError(t, repo.Save(ctx, d))

	mr.FastForward(40 * time.Second)
	require.NoError(t, repo.Save(ctx, d))
	mr.FastForward(40 * time.Second)

	_, err := repo.Get(ctx, d.ID)
	assert.NoError(t, err, "save must restart the expiry clock")
}

func TestDraftNilLinesRepaired(t *testing.T) {
	repo, mr := setupRepo(t, time.Hour)

	// A draft stored without a lines field must come back usable.
	draftID := id.New()
	require.NoError(t, mr.Set(draftKeyPrefix+draftID.String(),
		fmt.Sprintf(`{"id":%q,"mode":"sale"}`, draftID.String())))

	loaded, err := repo.Get(context.Background(), draftID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Lines)
	assert.Equal(t, 0, loaded.Lines.Len())
}
