package tui

import (
	"sync"

	"github.com/Veraticus/comps/internal/rules"
	tea "github.com/charmbracelet/bubbletea"
)

// bookChangedMsg reports a mutation of the book.
type bookChangedMsg struct {
	change rules.Change
}

// changesClosedMsg is sent once the change feed is shut down.
type changesClosedMsg struct{}

// changeFeed forwards book changes to the program. Copies of the model share
// one feed, so closing it from any copy stops the listener exactly once.
type changeFeed struct {
	ch          chan rules.Change
	unsubscribe func()
	once        sync.Once
}

func subscribe(book *rules.Book) *changeFeed {
	f := &changeFeed{ch: make(chan rules.Change, 16)}
	f.unsubscribe = book.Subscribe(func(c rules.Change) {
		select {
		case f.ch <- c:
		default:
		}
	})
	return f
}

// close drops the subscription, then closes the channel. Book notifications
// are synchronous, so nothing sends after unsubscribe returns.
func (f *changeFeed) close() {
	f.once.Do(func() {
		f.unsubscribe()
		close(f.ch)
	})
}

// waitForChange blocks until the book reports a change or the feed closes.
func waitForChange(ch <-chan rules.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return changesClosedMsg{}
		}
		return bookChangedMsg{change: change}
	}
}
