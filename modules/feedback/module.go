// Package feedback is an example extension with a generated settings page
// and a minimum-host-version constraint.
package feedback

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/vk/plugkit/internal/extension"
)

// Identity is the qualified name this extension is registered under.
const Identity = "plugkit.feedback"

// Feedback implements extension.Extension and handles extra hooks.
type Feedback struct {
	initRuns int
}

// New constructs an uninitialized Feedback.
func New() extension.Extension {
	return &Feedback{}
}

// ManifestPath returns the manifest next to this source file.
func (f *Feedback) ManifestPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "extension.hcl")
}

// MinimumHostVersion requires a host new enough for the block editor APIs
// the admin screens build on.
func (f *Feedback) MinimumHostVersion() string { return "6.0.0" }

// Init declares the admin assets and the settings page. The run counter
// guards against hosts that re-enter bootstrap.
func (f *Feedback) Init(rt *extension.Runtime) error {
	f.initRuns++
	if f.initRuns > 1 {
		return nil
	}

	rt.AddAdminStyle("assets/css/feedback-admin.css", nil, "")

	rt.AddSection("inbox", "Inbox", "Where submitted feedback lands and who gets told about it.")
	rt.AddSection("form", "Form", "")
	rt.AddField("inbox", "notify-address", "Notification address", func(w io.Writer) {
		fmt.Fprint(w, `<input type="email" name="notify-address" class="regular-text">`)
	})
	rt.AddField("inbox", "digest", "Daily digest", func(w io.Writer) {
		fmt.Fprint(w, `<input type="checkbox" name="digest" value="1">`)
	})
	rt.AddField("form", "max-length", "Maximum message length", func(w io.Writer) {
		fmt.Fprint(w, `<input type="number" name="max-length" value="2000">`)
	})
	return nil
}

// HandleHook implements extension.HookHandler for extra hook wiring.
func (f *Feedback) HandleHook(ctx context.Context, hook string, args ...any) {
	if len(args) == 0 {
		return
	}
	if w, ok := args[0].(io.Writer); ok {
		fmt.Fprintf(w, "<!-- feedback handled %s -->", hook)
	}
}
