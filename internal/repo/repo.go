package repo

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/diff"
	"github.com/keshon/qop/internal/fs"
	"github.com/keshon/qop/internal/patch"
	"github.com/keshon/qop/internal/store"
)

// Repository is the operation surface over one working tree and its .qop
// directory.
type Repository struct {
	Config   *config.RepoConfig
	Settings *config.Settings
	Store    *store.Store
	Engine   *diff.Engine
	Log      zerolog.Logger
	Stdin    io.Reader
}

// Options allows optional dependency injection.
type Options struct {
	FS       fs.FS
	Settings *config.Settings // loaded from .qop/config.toml when nil
	Log      *zerolog.Logger
	Progress io.Writer
	Stdin    io.Reader
}

// Open builds a repository for the working tree at root. It does not require
// a snapshot to exist.
func Open(root string, opts *Options) (*Repository, error) {
	if opts == nil {
		opts = &Options{}
	}
	cfg := config.NewRepoConfig(root)

	settings := opts.Settings
	if settings == nil {
		var err error
		settings, err = config.LoadSettings(cfg)
		if err != nil {
			return nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Log != nil {
		log = *opts.Log
	}

	st, err := store.NewStore(cfg, &store.Options{
		FS:       opts.FS,
		HashAlgo: settings.Hash,
		Log:      &log,
		Progress: opts.Progress,
	})
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	r := &Repository{
		Config:   cfg,
		Settings: settings,
		Store:    st,
		Engine:   diff.NewEngine(st, log),
		Log:      log,
		Stdin:    opts.Stdin,
	}
	if r.Stdin == nil {
		r.Stdin = os.Stdin
	}
	return r, nil
}

// Snapshot replaces the stored baseline with the current working tree.
func (r *Repository) Snapshot() (*store.Index, error) {
	return r.Store.Snapshot()
}

// Diff returns the patch from the snapshot to the working tree, or the
// opposite direction when reverse is set.
func (r *Repository) Diff(reverse bool) (*patch.Patch, error) {
	idx, err := r.Store.LoadIndex()
	if err != nil {
		return nil, err
	}
	p, err := r.Engine.Diff(idx, reverse)
	if err != nil {
		return nil, err
	}
	r.Log.Info().Int("files", len(p.Files)).Bool("reverse", reverse).Msg("diff computed")
	return p, nil
}

// Reverse reads the patch at source and returns its inverse.
func (r *Repository) Reverse(source string) (*patch.Patch, error) {
	p, err := r.ReadPatch(source)
	if err != nil {
		return nil, err
	}
	return patch.Reverse(p), nil
}

// Policy is the configured apply policy.
func (r *Repository) Policy() patch.Policy {
	return patch.Policy(r.Settings.Apply.Policy)
}
