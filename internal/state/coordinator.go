package state

import (
	"errors"
	"sync"

	"github.com/sfairchild/parasvg/internal/gist"
	"github.com/sfairchild/parasvg/internal/svgdoc"
)

// Status describes the coordinator's network activity.
type Status int

const (
	StatusIdle Status = iota
	StatusSavePending
	StatusLoadPending
)

// ResourceSuffix is appended to the user-chosen basename to form the file
// key inside the remote store.
const ResourceSuffix = ".parametric.svg"

var (
	// ErrNoContents is returned by BeginSave before file contents were
	// staged. The caller serializes the document and retries.
	ErrNoContents = errors.New("no staged file contents")

	// ErrNoBasename is returned by BeginSave before a basename was chosen.
	// The caller prompts for one and retries.
	ErrNoBasename = errors.New("no basename chosen")

	// ErrSavePending is returned when a save is requested while another is
	// outstanding. Overlapping saves are rejected rather than raced.
	ErrSavePending = errors.New("a save is already in progress")
)

// SaveAttempt identifies an issued save and carries its request.
type SaveAttempt struct {
	Seq     uint64
	Request gist.SaveRequest
}

// Coordinator is the sync state machine. Methods are safe for concurrent
// use. Completions carry the sequence number issued with the request; a
// completion whose sequence is stale is discarded, so only the latest
// request per direction can change state.
type Coordinator struct {
	mu sync.Mutex

	doc      svgdoc.Document
	snapshot *svgdoc.Document
	remoteID string
	basename string

	staged    string
	stagedDoc svgdoc.Document

	savePending bool
	loadPending bool
	saveSeq     uint64
	loadSeq     uint64
	loadErr     error

	toasts []Toast
}

// NewCoordinator returns a Coordinator with an empty document.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// SetMarkup replaces the live markup. Staged contents become stale.
func (c *Coordinator) SetMarkup(markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Markup = markup
	c.staged = ""
}

// SetVariables replaces the live variable list wholesale.
func (c *Coordinator) SetVariables(vars []svgdoc.Variable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Variables = nil
	if len(vars) > 0 {
		c.doc.Variables = make([]svgdoc.Variable, len(vars))
		copy(c.doc.Variables, vars)
	}
	c.staged = ""
}

// SetDocument replaces the whole live document, e.g. when restoring a
// scratch file at startup.
func (c *Coordinator) SetDocument(doc svgdoc.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc.Clone()
	c.staged = ""
}

// Document returns a copy of the live document.
func (c *Coordinator) Document() svgdoc.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Snapshot returns the last-synced document, if any.
func (c *Coordinator) Snapshot() (svgdoc.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return svgdoc.Document{}, false
	}
	return c.snapshot.Clone(), true
}

// Dirty reports whether the live document differs from the snapshot. With
// no snapshot there is nothing to compare against and Dirty is false; use
// Synced to distinguish never-saved from clean.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil && !c.doc.Equal(*c.snapshot)
}

// Synced reports whether a snapshot exists and matches the live document.
func (c *Coordinator) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil && c.doc.Equal(*c.snapshot)
}

// Status reports the current network activity. A pending save takes
// display precedence over a pending load.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.savePending:
		return StatusSavePending
	case c.loadPending:
		return StatusLoadPending
	default:
		return StatusIdle
	}
}

// LoadError returns the failure recorded by the most recent load attempt,
// or nil.
func (c *Coordinator) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// RemoteID returns the id of the last synced remote snapshot, or "".
func (c *Coordinator) RemoteID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteID
}

// SetBasename records the user-chosen basename for the resource name.
func (c *Coordinator) SetBasename(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basename = name
}

// Basename returns the chosen basename, or "".
func (c *Coordinator) Basename() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.basename
}

// ResourceName derives the remote file key from the basename.
func (c *Coordinator) ResourceName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.basename + ResourceSuffix
}

// StageContents records serialized file contents ready for upload along
// with the document they were rendered from. Serialization runs
// asynchronously, so an edit can land between requesting it and staging
// its result; a save only goes out while the rendered-from document still
// matches the live one. Contents are consumed by the next save attempt and
// invalidated by any edit.
func (c *Coordinator) StageContents(payload string, renderedFrom svgdoc.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = payload
	c.stagedDoc = renderedFrom.Clone()
}

// HasStagedContents reports whether file contents rendered from the
// current live document are staged.
func (c *Coordinator) HasStagedContents() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staged != "" && c.stagedDoc.Equal(c.doc)
}

// InvalidateContents drops staged contents, forcing the next save to
// serialize again. Called when a prompt or dialog intervenes between
// staging and saving.
func (c *Coordinator) InvalidateContents() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = ""
}

// BeginSave issues a save attempt for the staged contents. It never
// performs I/O itself; the caller runs the returned request against the
// remote client and reports back through ApplySaveResult. Precondition
// failures: ErrSavePending while a save is outstanding, ErrNoBasename
// before a basename was chosen, ErrNoContents before contents were staged
// or when the staged contents were rendered from a document that no longer
// matches the live one. The last check keeps the promoted snapshot
// identical to the payload the remote actually accepted.
func (c *Coordinator) BeginSave(token string) (SaveAttempt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.savePending {
		return SaveAttempt{}, ErrSavePending
	}
	if c.basename == "" {
		return SaveAttempt{}, ErrNoBasename
	}
	if c.staged == "" || !c.stagedDoc.Equal(c.doc) {
		return SaveAttempt{}, ErrNoContents
	}

	c.saveSeq++
	c.savePending = true
	return SaveAttempt{
		Seq: c.saveSeq,
		Request: gist.SaveRequest{
			RemoteID:     c.remoteID,
			ResourceName: c.basename + ResourceSuffix,
			Content:      c.staged,
			Token:        token,
		},
	}, nil
}

// ApplySaveResult records the outcome of the save issued with seq. Stale
// results are discarded. Success promotes the staged document to snapshot;
// failure keeps live state untouched, pushes a toast, and returns the
// coordinator to its prior dirty or clean state.
func (c *Coordinator) ApplySaveResult(seq uint64, id string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.saveSeq || !c.savePending {
		return
	}
	c.savePending = false
	c.staged = ""

	if err != nil {
		c.pushToast(toastForSaveError(err))
		return
	}
	promoted := c.stagedDoc.Clone()
	c.snapshot = &promoted
	c.remoteID = id
}

// BeginLoad issues a load attempt for the given remote id and returns its
// sequence number. Any previous load failure is cleared.
func (c *Coordinator) BeginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadSeq++
	c.loadPending = true
	c.loadErr = nil
	return c.loadSeq
}

// ApplyLoadResult records the outcome of the load issued with seq. Stale
// results are discarded. Success replaces both snapshot and live document
// with the fetched one; failure records the reason, pushes a toast, and
// leaves the user's in-progress state untouched.
func (c *Coordinator) ApplyLoadResult(seq uint64, remoteID string, doc svgdoc.Document, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.loadSeq || !c.loadPending {
		return
	}
	c.loadPending = false

	if err != nil {
		c.loadErr = err
		c.pushToast(toastForLoadError(err))
		return
	}
	fetched := doc.Clone()
	c.snapshot = &fetched
	c.doc = doc.Clone()
	c.remoteID = remoteID
	c.staged = ""
}
