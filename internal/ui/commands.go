package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sfairchild/parasvg/internal/auth"
	"github.com/sfairchild/parasvg/internal/gist"
	"github.com/sfairchild/parasvg/internal/state"
	"github.com/sfairchild/parasvg/internal/svgdoc"
)

// Completion messages carry the sequence number of the request they answer.
// Update applies them through the coordinator or session, which discard
// stale sequences, so responses arriving out of order cannot clobber newer
// state.

type exchangeResultMsg struct {
	seq   uint64
	token string
	err   error
}

type saveResultMsg struct {
	seq uint64
	id  string
	err error
}

type loadResultMsg struct {
	seq          uint64
	remoteID     string
	resourceName string
	doc          svgdoc.Document
	err          error
}

type contentsReadyMsg struct {
	payload string
	doc     svgdoc.Document // the document the payload was rendered from
	err     error
}

func exchangeCmd(ctx context.Context, exchanger auth.Exchanger, seq uint64, code string) tea.Cmd {
	return func() tea.Msg {
		token, err := exchanger.Exchange(ctx, code)
		return exchangeResultMsg{seq: seq, token: token, err: err}
	}
}

func saveCmd(ctx context.Context, client gist.SnapshotClient, attempt state.SaveAttempt) tea.Cmd {
	return func() tea.Msg {
		id, err := client.CreateOrUpdate(ctx, attempt.Request)
		return saveResultMsg{seq: attempt.Seq, id: id, err: err}
	}
}

func loadCmd(ctx context.Context, client gist.SnapshotClient, seq uint64, id, resourceName string) tea.Cmd {
	return func() tea.Msg {
		content, err := client.Fetch(ctx, id, resourceName)
		if err != nil {
			return loadResultMsg{seq: seq, err: err}
		}
		return loadResultMsg{
			seq:          seq,
			remoteID:     id,
			resourceName: resourceName,
			doc:          svgdoc.Parse(content),
		}
	}
}

// renderContentsCmd is the serialization round trip: the document goes out,
// the uploadable file content comes back as a one-shot message. The
// message carries the input document so the coordinator can tell whether
// an edit arrived while the render was in flight.
func renderContentsCmd(doc svgdoc.Document) tea.Cmd {
	return func() tea.Msg {
		payload, err := svgdoc.Render(doc)
		return contentsReadyMsg{payload: payload, doc: doc, err: err}
	}
}
