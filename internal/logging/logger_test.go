package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_Default(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
}

func TestWithLogger_RoundTrip(t *testing.T) {
	base := zerolog.New(nil).With().Str("component", "worldgen").Logger()
	ctx := WithLogger(context.Background(), base)

	got := FromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, base, *got)
}

func TestStageLogger(t *testing.T) {
	ctx := WithLogger(context.Background(), zerolog.New(nil))
	logger := StageLogger(ctx, "heightmap")
	// Must not panic and must be usable
	logger.Debug().Int("width", 40).Msg("stage logger smoke test")
}
