// Package progress renders a terminal progress bar for the long-running
// pipeline phases. When stderr is not a terminal the bar degrades to a
// no-op so logs piped to a file stay clean.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Bar tracks completion of one pipeline phase. A nil inner bar means
// non-interactive output and every method becomes a no-op.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a bar for total units of work with the given phase label.
func NewBar(label string, total int) *Bar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &Bar{}
	}

	return &Bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]"+label+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)}
}

// Add1 records one completed unit.
func (b *Bar) Add1() {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

// Finish completes the bar and moves the cursor past it.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
		_, _ = os.Stderr.WriteString("\n")
	}
}
