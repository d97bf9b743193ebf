// Package app provides the orchestration layer for the parasvg editor.
//
// # Overview
//
// This package wires together configuration, credentials, the GitHub gist
// client, the sync coordinator, and the UI to create the complete parasvg
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load editor configuration from ~/.config/parasvg/config.toml
//  2. Load user preferences (theme, last opened gist)
//  3. Open the credential store and silently restore a cached GitHub token
//  4. Initialize HTTP clients for the gist API and the auth gatekeeper
//  5. Create the sync coordinator and restore any scratch work in progress
//  6. Start the TUI and block until the user exits or the context cancels
//  7. Persist scratch work and the last-gist hint on the way out
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Configuration or preferences file present but unparseable
//   - Gist or auth client initialization failure (bad host URL)
//   - Scratch directory unreadable on startup
//
// Recoverable errors (surfaced as toasts inside the UI, never fatal):
//   - Login code exchange failures
//   - Gist save and download failures
//   - Credential cache write failures (the session keeps the token in
//     memory for the rest of the run)
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/parasvg/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/parasvg/prefs.toml)
//   - CredsPath: Path to the credential store (default: ~/.config/parasvg/credentials.toml)
//   - ScratchDir: Where work in progress lives (default: ~/.local/share/parasvg)
//   - GistID / GistName: Gist to open on startup instead of resuming scratch
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal. Business
// logic lives in domain packages (gist, auth, state, svgdoc, ui). The app
// package simply connects these pieces with sensible defaults.
package app
