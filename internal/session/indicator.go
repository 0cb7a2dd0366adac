package session

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// indicator shows a spinner while fragment requests are in flight. It is
// driven by request lifecycle events on the event loop.
type indicator struct {
	w      io.Writer
	bar    *progressbar.ProgressBar
	active int
}

func newIndicator(w io.Writer) *indicator {
	return &indicator{w: w}
}

func (i *indicator) start(target string) {
	i.active++
	if i.bar != nil {
		_ = i.bar.Add(1)
		return
	}
	i.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(i.w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Updating[reset] #%s", target)),
		progressbar.OptionClearOnFinish(),
	)
	_ = i.bar.RenderBlank()
}

func (i *indicator) stop() {
	if i.active == 0 {
		return
	}
	i.active--
	if i.active == 0 && i.bar != nil {
		_ = i.bar.Finish()
		i.bar = nil
	}
}
