package seeders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"filasling/pkg/config"
)

func TestSeedDevAdmin_Guards(t *testing.T) {
	s := New(nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name string
		cfg  config.Config
		want error
	}{
		{"disabled", config.Config{Env: "development"}, ErrSeedDisabled},
		{"production", config.Config{Env: "Production", Seed: config.SeedConfig{DevAdmin: true, AdminPassword: "x"}}, ErrSeedInProduction},
		{"no password", config.Config{Env: "development", Seed: config.SeedConfig{DevAdmin: true}}, ErrSeedNoPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, s.SeedDevAdmin(ctx, &tc.cfg), tc.want)
		})
	}
}

func TestEtapasData_StartsAtWaitingStage(t *testing.T) {
	seen := map[int]bool{}
	for _, e := range etapasData {
		assert.False(t, seen[e.Numero], "número repetido %d", e.Numero)
		seen[e.Numero] = true
	}
	assert.True(t, seen[1])
}
