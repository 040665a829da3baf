package main

import (
	"context"
	"testing"

	"overcooked-tableside/config"
	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/notify"
	"overcooked-tableside/order-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_MemoryWithSeed(t *testing.T) {
	cfg := config.AppConfig{Store: config.StoreMemory, SeedDemo: true}

	repo, closeStore := openStore(context.Background(), cfg, logger.Discard())
	defer closeStore()

	require.IsType(t, &storage.MemoryRepository{}, repo)
	table, err := repo.GetActiveTable(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, table.TableNumber)
}

func TestOpenBackplane_MemoryUsesHub(t *testing.T) {
	hub := notify.NewHub(4, nil)
	cfg := config.AppConfig{Backplane: config.BackplaneMemory}

	transport, closeBus := openBackplane(context.Background(), cfg, hub, logger.Discard())
	defer closeBus()

	assert.Same(t, hub, transport)
}
