package views

// ViewState contains the size and status message shared by the canvas and its overlays
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the status bar
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err in the status bar; nil clears it
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages sent by overlays when they close

// PromptSubmittedMsg carries the value entered in a prompt
type PromptSubmittedMsg struct {
	Tag   string
	Value string
}

// ConfirmedMsg is sent when the user accepts a confirmation
type ConfirmedMsg struct {
	Tag string
}

// ModalClosedMsg is sent when an overlay is dismissed without a result
type ModalClosedMsg struct{}
