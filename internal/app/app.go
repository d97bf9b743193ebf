package app

import (
	"context"
	"fmt"
	"log"

	"github.com/sfairchild/parasvg/internal/auth"
	"github.com/sfairchild/parasvg/internal/config"
	"github.com/sfairchild/parasvg/internal/credstore"
	"github.com/sfairchild/parasvg/internal/gist"
	"github.com/sfairchild/parasvg/internal/prefs"
	"github.com/sfairchild/parasvg/internal/scratch"
	"github.com/sfairchild/parasvg/internal/state"
	"github.com/sfairchild/parasvg/internal/ui"
)

// Options configure the parasvg application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/parasvg/prefs.toml
	CredsPath  string // empty uses default ~/.config/parasvg/credentials.toml
	ScratchDir string // empty uses default ~/.local/share/parasvg
	GistID     string // gist to load on startup; empty resumes scratch work
	GistName   string // basename within the gist; empty uses the default
}

// Run boots the parasvg editor until the context is cancelled or the user
// quits. Scratch work is restored on the way in and persisted on the way
// out, so an unsaved document survives between runs.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	creds := credstore.New(opts.CredsPath)
	session := auth.NewSession(creds)
	session.Init()

	gistClient, err := gist.NewClient(cfg.GistHost, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init gist client: %w", err)
	}
	exchanger, err := auth.NewExchangeClient(cfg.AuthHost, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init auth client: %w", err)
	}

	coordinator := state.NewCoordinator()

	// An explicit gist on the command line wins over scratch work; the
	// initial load would overwrite the restored document anyway.
	if opts.GistID == "" {
		doc, found, err := scratch.Load(opts.ScratchDir)
		if err != nil {
			return fmt.Errorf("restore scratch: %w", err)
		}
		if found {
			coordinator.SetDocument(doc)
		}
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Coordinator: coordinator,
		Session:     session,
		Gist:        gistClient,
		Exchanger:   exchanger,
		ThemeName:   userPrefs.Theme,
		AuthHost:    cfg.AuthHost,
		InitialGist: opts.GistID,
		InitialName: opts.GistName,
		LastGist:    userPrefs.LastGist,
	}
	if err := ui.Run(uiOpts); err != nil {
		return err
	}

	if err := scratch.Save(opts.ScratchDir, coordinator.Document()); err != nil {
		return fmt.Errorf("persist scratch: %w", err)
	}

	if id := coordinator.RemoteID(); id != "" && id != userPrefs.LastGist {
		userPrefs.LastGist = id
		if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
			// Losing the last-gist hint is not worth failing the exit over.
			log.Printf("save prefs: %v", err)
		}
	}

	return nil
}
