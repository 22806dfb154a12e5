package logging

import (
	"context"
	"sync"
)

// Entry is one captured log call.
type Entry struct {
	Level   Level
	Message string
	Err     error
	Fields  Fields
}

// Recorder keeps every entry in memory. Useful in tests that assert on
// diagnostics without a real backend.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	level   *Level
	fields  Fields
}

// NewRecorder returns a Recorder capturing DebugLevel and above.
func NewRecorder() *Recorder {
	level := DebugLevel
	return &Recorder{
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
		level:   &level,
		fields:  make(Fields),
	}
}

func (r *Recorder) record(level Level, err error, msg string, fields ...Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if level < *r.level {
		return
	}
	*r.entries = append(*r.entries, Entry{
		Level:   level,
		Message: msg,
		Err:     err,
		Fields:  mergeFields(append([]Fields{r.fields}, fields...)...),
	})
}

func (r *Recorder) Debug(msg string, fields ...Fields) { r.record(DebugLevel, nil, msg, fields...) }
func (r *Recorder) Info(msg string, fields ...Fields)  { r.record(InfoLevel, nil, msg, fields...) }
func (r *Recorder) Warn(msg string, fields ...Fields)  { r.record(WarnLevel, nil, msg, fields...) }

func (r *Recorder) Error(err error, msg string, fields ...Fields) {
	r.record(ErrorLevel, err, msg, fields...)
}

func (r *Recorder) Fatal(err error, msg string, fields ...Fields) {
	r.record(FatalLevel, err, msg, fields...)
}

func (r *Recorder) WithFields(fields Fields) Logger {
	return &Recorder{
		mu:      r.mu,
		entries: r.entries,
		level:   r.level,
		fields:  mergeFields(r.fields, fields),
	}
}

func (r *Recorder) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return r.WithFields(fields)
	}
	return r
}

func (r *Recorder) SetLevel(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.level = level
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Filter returns the entries recorded at level.
func (r *Recorder) Filter(level Level) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = (*r.entries)[:0]
}
