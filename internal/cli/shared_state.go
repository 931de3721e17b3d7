package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Router *Router

	// Modal is the receipt-preview presenter, shown over the active view.
	Modal ModalPresenter

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
