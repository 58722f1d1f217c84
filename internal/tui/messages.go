package tui

import "github.com/skytrips/search-core/internal/domain"

// refreshMsg is sent when an engine finishes an asynchronous lookup and
// the view must repaint.
type refreshMsg struct{}

// statusMsg carries a transient user-facing notice (validation failures,
// fetch errors) into the status line.
type statusMsg string

// searchLaunchedMsg is sent when a submitted search has been handed off.
type searchLaunchedMsg struct {
	req domain.SearchRequest
}
