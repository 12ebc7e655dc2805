package upstreams

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads filePath whenever it changes and hands each valid result to
// onLoad. Invalid files are logged and skipped. It blocks until ctx is done.
// The directory is watched so editors that replace the file are noticed.
func Watch(ctx context.Context, filePath string, logger zerolog.Logger, onLoad func(*Loader)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("watching %s: %w", filePath, err)
	}

	target := filepath.Clean(filePath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			loader := NewLoader()
			if err := loader.Load(filePath); err != nil {
				logger.Error().Err(err).Str("file", filePath).Msg("upstreams reload failed, keeping previous credentials")
				continue
			}
			logger.Info().Str("file", filePath).Int("upstreams", len(loader.order)).Msg("upstreams reloaded")
			onLoad(loader)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("upstreams watcher error")
		}
	}
}
