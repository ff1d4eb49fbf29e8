package orchestrator

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// BenchmarkGenerate measures a mid-size random-mode generation
func BenchmarkGenerate(b *testing.B) {
	s, err := NewService(WithLogger(zerolog.Nop()))
	require.NoError(b, err)

	cfg := DefaultConfig(80, 50)
	players := roster(6)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Generate(ctx, []byte("bench"), cfg, players); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGenerateIsland measures the bucket-driven island pipeline
func BenchmarkGenerateIsland(b *testing.B) {
	s, err := NewService(WithLogger(zerolog.Nop()))
	require.NoError(b, err)

	cfg := DefaultConfig(60, 40)
	cfg.Generator = ModeIsland
	players := roster(6)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Generate(ctx, []byte("bench-island"), cfg, players); err != nil {
			b.Fatal(err)
		}
	}
}
