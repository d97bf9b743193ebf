package state

import (
	"errors"
	"fmt"

	"github.com/sfairchild/parasvg/internal/gist"
)

const (
	issuesURL    = "https://github.com/sfairchild/parasvg/issues"
	gistHTMLHost = "https://gist.github.com"
)

// Toast is a user-visible notice with an optional actionable link.
type Toast struct {
	Message     string
	ActionLabel string
	ActionURL   string
}

// PushToast appends a notice. Toasts are stored newest-first and never
// deduplicated.
func (c *Coordinator) PushToast(toast Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushToast(toast)
}

// PushFailure appends a plain failure message as a toast.
func (c *Coordinator) PushFailure(message string) {
	c.PushToast(Toast{Message: message})
}

func (c *Coordinator) pushToast(toast Toast) {
	c.toasts = append([]Toast{toast}, c.toasts...)
}

// Toasts returns the notices in display order, oldest first.
func (c *Coordinator) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	for i, toast := range c.toasts {
		out[len(c.toasts)-1-i] = toast
	}
	return out
}

func toastForSaveError(err error) Toast {
	switch {
	case errors.Is(err, gist.ErrNoContent):
		return Toast{
			Message:     "Something went wrong preparing the file contents. This looks like a bug in parasvg.",
			ActionLabel: "Open an issue",
			ActionURL:   issuesURL,
		}
	case errors.Is(err, gist.ErrNoToken):
		return Toast{
			Message:     "Saving was attempted without a GitHub connection. This looks like a bug in parasvg.",
			ActionLabel: "Open an issue",
			ActionURL:   issuesURL,
		}
	default:
		return Toast{
			Message:     "Saving to GitHub failed: " + err.Error() + ". Hit save to try again.",
			ActionLabel: "Open an issue",
			ActionURL:   issuesURL,
		}
	}
}

func toastForLoadError(err error) Toast {
	var notFound *gist.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return Toast{
			Message:     fmt.Sprintf("We couldn't find the gist %q. It may have been deleted or made private.", notFound.ID),
			ActionLabel: "View on GitHub",
			ActionURL:   gistHTMLHost + "/" + notFound.ID,
		}
	case errors.Is(err, gist.ErrTruncated):
		return Toast{
			Message: "That gist is too large to load safely, so nothing was changed.",
		}
	default:
		return Toast{
			Message:     "Loading from GitHub failed: " + err.Error() + ".",
			ActionLabel: "Open an issue",
			ActionURL:   issuesURL,
		}
	}
}
