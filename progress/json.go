package progress

import (
	"encoding/json"
	"os"
	"time"
)

// Event represents a structured JSON progress event
type Event struct {
	Type      string                 `json:"type"`      // "stage", "progress", "complete", "error", "info"
	Timestamp time.Time              `json:"timestamp"` // When this event occurred
	Data      map[string]interface{} `json:"data"`      // Event-specific data
}

// JSONEmitter outputs structured JSON events to stdout for machine consumption
type JSONEmitter struct {
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter for structured output
func NewJSONEmitter() *JSONEmitter {
	return &JSONEmitter{
		encoder: json.NewEncoder(os.Stdout),
	}
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.encoder.Encode(Event{
		Type:      "stage",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"stage":   stage,
			"message": message,
		},
	})
}

// EmitProgress emits a progress event as JSON, merging metadata into the
// event data
func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{
		"count": count,
	}
	for k, v := range metadata {
		data[k] = v
	}
	e.encoder.Encode(Event{
		Type:      "progress",
		Timestamp: time.Now(),
		Data:      data,
	})
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.encoder.Encode(Event{
		Type:      "complete",
		Timestamp: time.Now(),
		Data:      summary,
	})
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.encoder.Encode(Event{
		Type:      "error",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"stage": stage,
			"error": err.Error(),
		},
	})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.encoder.Encode(Event{
		Type:      "info",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": message,
		},
	})
}
