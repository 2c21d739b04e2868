package storage

import (
	"swiperank/internal/providers"
	"sync"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (l *recordingLogger) Errorf(_ providers.TypeEnum, format string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, format)
}
func (l *recordingLogger) Warnf(_ providers.TypeEnum, format string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}
func (l *recordingLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *recordingLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *recordingLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *recordingLogger) Close()                                                {}

func (l *recordingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}
