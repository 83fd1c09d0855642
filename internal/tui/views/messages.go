package views

// SubmitRequestedMsg asks the app to finalize the active workflow and
// submit the result.
type SubmitRequestedMsg struct{}

// CopyRequestedMsg asks the app to copy the finalized words.
type CopyRequestedMsg struct{}
