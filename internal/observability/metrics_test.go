package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type stubResult struct {
	n       int
	err     error
	defects int
}

func (s stubResult) Len() int             { return s.n }
func (s stubResult) Err() error           { return s.err }
func (s stubResult) DefectCount() int     { return s.defects }
func (s stubResult) LoadSeconds() float64 { return 0.002 }

func TestObserveLoad_Success(t *testing.T) {
	m := NewMetricsForTesting()
	m.ObserveLoad(stubResult{n: 41, defects: 2})

	assert.Equal(t, 41.0, testutil.ToFloat64(m.RecordsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreAvailable))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldDefects))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreLoadFailures))
}

func TestObserveLoad_Failure(t *testing.T) {
	m := NewMetricsForTesting()
	m.ObserveLoad(stubResult{err: errors.New("boom")})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.RecordsLoaded))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreAvailable))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreLoadFailures))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"info":    "INFO",
		"":        "INFO",
		"verbose": "INFO",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in).String(), in)
	}
}
