// Package errors defines the render error taxonomy shared by the splitting
// and assembly pipeline, plus a collector used by the preview server overlay.
package errors

import (
	"fmt"
	"sync"
	"time"
)

// Stage identifies the pipeline phase in which an error occurred.
type Stage string

const (
	StageAnalyze  Stage = "analyze"
	StageDecide   Stage = "decide"
	StageExtract  Stage = "extract"
	StageRender   Stage = "render"
	StageAssemble Stage = "assemble"
)

// RenderError wraps a pipeline failure with the stage and part in which it
// occurred. Part is 1-based; Part == 0 means the error is not chunk-specific.
type RenderError struct {
	Stage     Stage
	Part      int
	Total     int
	Message   string
	Err       error
	Timestamp time.Time
}

// Error implements the error interface
func (re *RenderError) Error() string {
	if re.Part > 0 {
		return fmt.Sprintf("%s (parte %d de %d): %s: %v", re.Stage, re.Part, re.Total, re.Message, re.Err)
	}
	if re.Err != nil {
		return fmt.Sprintf("%s: %s: %v", re.Stage, re.Message, re.Err)
	}
	return fmt.Sprintf("%s: %s", re.Stage, re.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (re *RenderError) Unwrap() error {
	return re.Err
}

// Wrap builds a RenderError for a non-chunk-specific failure.
func Wrap(stage Stage, message string, err error) *RenderError {
	return &RenderError{
		Stage:     stage,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// WrapPart builds a RenderError for a failure while producing one chunk.
func WrapPart(stage Stage, part, total int, message string, err error) *RenderError {
	return &RenderError{
		Stage:     stage,
		Part:      part,
		Total:     total,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Collector accumulates render errors for later display, e.g. in the preview
// server's error overlay. Safe for concurrent use.
type Collector struct {
	errors []*RenderError
	mutex  sync.RWMutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{errors: make([]*RenderError, 0)}
}

// Add records an error. Nil errors are ignored.
func (c *Collector) Add(err *RenderError) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a copy of all collected errors.
func (c *Collector) Errors() []*RenderError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]*RenderError, len(c.errors))
	copy(result, c.errors)
	return result
}

// HasErrors returns true if there are any errors
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.errors) > 0
}

// Clear drops all collected errors.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = c.errors[:0]
}
