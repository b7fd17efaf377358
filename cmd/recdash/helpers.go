package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/config"
	"github.com/Veraticus/recdash/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings reads the validated settings from viper.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, common.NewUserError("invalid configuration", err)
	}
	return settings, nil
}

// initClient creates the analytics API client.
func initClient(settings config.Settings) (*analytics.Client, error) {
	client, err := analytics.NewClient(settings.API)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics client: %w", err)
	}
	return client, nil
}

// initJournal opens the load journal with proper path expansion. It returns
// nil when the journal is disabled.
func initJournal(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	if !settings.JournalEnabled {
		return nil, nil
	}

	store, err := storage.Open(ctx, settings.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open load journal: %w", err)
	}
	return store, nil
}

// closeJournal closes store if it was opened.
func closeJournal(store *storage.SQLiteStorage) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close load journal", nil)
	}
}
