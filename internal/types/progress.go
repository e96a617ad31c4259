package types

// Phase identifies the step a progress event belongs to, so front ends
// can react to structure instead of parsing message text.
type Phase string

const (
	PhaseInit      Phase = "init"
	PhaseDownload  Phase = "download"
	PhaseExtract   Phase = "extract"
	PhaseConfigure Phase = "configure"
	PhaseBootstrap Phase = "bootstrap"
	PhaseToolkit   Phase = "toolkit"
	PhaseRender    Phase = "render"
	PhaseWrite     Phase = "write"
	PhaseInstall   Phase = "install"
	PhaseDone      Phase = "done"
	PhaseError     Phase = "error"
)

// ProgressEvent is a structured progress update: an overall percentage
// in [0,100], the phase it belongs to, and a human-readable detail line.
type ProgressEvent struct {
	Percent int
	Phase   Phase
	Detail  string
}

// ProgressSink consumes progress events. A nil sink is valid and means
// the caller does not want progress reporting.
type ProgressSink func(ProgressEvent)

// Emit sends an event to the sink if one is set.
func (s ProgressSink) Emit(percent int, phase Phase, detail string) {
	if s == nil {
		return
	}
	s(ProgressEvent{Percent: percent, Phase: phase, Detail: detail})
}
