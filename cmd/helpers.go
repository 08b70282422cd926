package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/afero"

	"github.com/ELGA-GmbH/mike-multi-project/internal/domain/versions"
	"github.com/ELGA-GmbH/mike-multi-project/internal/log"
	"github.com/ELGA-GmbH/mike-multi-project/internal/storage"
)

// openStore builds the manifest store from the effective configuration.
func openStore() storage.Store {
	return storage.NewFileStore(afero.NewOsFs(), cfg.SiteDir, cfg.Prefix, cfg.ManifestName)
}

// registryObserver forwards registry mutation events to the debug log.
func registryObserver() versions.Option {
	return versions.WithObserver(func(ev versions.Event) {
		log.Debug(log.CatRegistry, "registry mutation",
			"op", ev.Op,
			"component", ev.Component,
			"version", ev.Identifier,
			"aliases", strings.Join(ev.Aliases, ","))
	})
}

// loadRegistry reads the manifest and reconstructs the registry. A
// manifest that does not exist yet yields an empty registry.
func loadRegistry(ctx context.Context, store storage.Store) (*versions.Registry, error) {
	data, err := store.Read(ctx)
	if errors.Is(err, storage.ErrDocNotExist) {
		log.Debug(log.CatStore, "no manifest yet, starting empty")
		return versions.NewRegistry(registryObserver()), nil
	}
	if err != nil {
		return nil, err
	}
	return versions.Parse(data, registryObserver())
}

// saveRegistry serializes the registry and publishes it through the
// store with the given snapshot message.
func saveRegistry(ctx context.Context, store storage.Store, r *versions.Registry, message string) error {
	data, err := r.Dump()
	if err != nil {
		return err
	}
	log.Debug(log.CatStore, "saving manifest", "bytes", len(data), "message", message)
	return store.Write(ctx, data, message)
}
