package vault

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	logger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	tagged := WithLogInfo(ctx, "account", 7)
	assert.NotEqual(t, GetLogger(ctx), GetLogger(tagged))
}

func TestContextBlockInfo(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 42)
	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 42, height)

	_, ok = BlockTime(ctx)
	assert.False(t, ok)
	_, ok = BlockTime(WithBlockTime(ctx, time.Time{}))
	assert.False(t, ok, "zero time is not a block time")

	assert.Panics(t, func() { GetChainID(ctx) })
	ctx = WithChainID(ctx, "vault-test")
	assert.Equal(t, "vault-test", GetChainID(ctx))

	// Block data is written once per block and never replaced.
	assert.Panics(t, func() { WithHeight(ctx, 43) })
	assert.Panics(t, func() { WithChainID(ctx, "vault-other") })
	assert.Panics(t, func() { WithChainID(context.Background(), "bad id") })
}

func TestIsValidChainID(t *testing.T) {
	valid := []string{"vault-test", "wish-YOU-88", "under_score"}
	invalid := []string{"", "short", "with space", "semi;colon", "much-too-long-for-a-chain-id"}

	for _, id := range valid {
		assert.True(t, IsValidChainID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidChainID(id), id)
	}
}

func TestIsExpired(t *testing.T) {
	now := AsUnixTime(time.Now())
	ctx := WithBlockTime(context.Background(), now.Time())

	assert.True(t, IsExpired(ctx, now.Add(-time.Minute)))
	assert.True(t, IsExpired(ctx, now), "expiration is inclusive")
	assert.False(t, IsExpired(ctx, now.Add(time.Second)))

	assert.Panics(t, func() { IsExpired(context.Background(), now) })
	assert.Panics(t, func() { WithBlockTime(ctx, time.Now()) })
}
