package providers

import (
	"time"
)

// local mocks to avoid an import cycle with testutil

type quietLogger struct{}

func (m *quietLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *quietLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *quietLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *quietLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *quietLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *quietLogger) Close()                                        {}

type countingMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
	namespaces      []string
}

func (m *countingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *countingMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *countingMetrics) IncCacheHits(ns string) {
	m.hits++
	m.namespaces = append(m.namespaces, ns)
}
func (m *countingMetrics) IncCacheMisses(ns string) {
	m.misses++
	m.namespaces = append(m.namespaces, ns)
}
func (m *countingMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *countingMetrics) IncPersistenceFailures(_ string)                  {}
func (m *countingMetrics) IncSwipes(_ string)                               {}
func (m *countingMetrics) SetUsersInMemory(_ int)                           {}
func (m *countingMetrics) SetCatalogSize(_ int)                             {}
