// Package progress reports pipeline stage progress during long-running
// dataset generation. Emitters are pluggable so the same pipeline code can
// drive terminal output, structured JSON, or nothing at all under test.
package progress

// Emitter is the interface for emitting progress updates during
// long-running pipeline stages.
type Emitter interface {
	// EmitStage announces the start of a processing stage
	EmitStage(stage string, message string)

	// EmitProgress announces batch progress with count and optional metadata.
	// Stages pass stage-specific data as metadata maps.
	EmitProgress(count int, metadata map[string]interface{})

	// EmitComplete announces successful completion with summary
	EmitComplete(summary map[string]interface{})

	// EmitError announces an error during processing
	EmitError(stage string, err error)

	// EmitInfo emits general informational message
	EmitInfo(message string)
}

// NopEmitter discards all progress events. Used under test and when the
// pipeline runs embedded without a terminal.
type NopEmitter struct{}

// NewNopEmitter creates an emitter that discards everything.
func NewNopEmitter() *NopEmitter {
	return &NopEmitter{}
}

func (e *NopEmitter) EmitStage(stage string, message string) {}

func (e *NopEmitter) EmitProgress(count int, metadata map[string]interface{}) {}

func (e *NopEmitter) EmitComplete(summary map[string]interface{}) {}

func (e *NopEmitter) EmitError(stage string, err error) {}

func (e *NopEmitter) EmitInfo(message string) {}
