// Package testutils holds the shared logger and record fixtures used by the
// package test suites.
package testutils

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l7mp/relate/pkg/record"
)

// NewLogger builds a development logger writing to the given writer (the
// ginkgo writer in the suites), with all verbosity levels enabled.
func NewLogger(w io.Writer, level int) logr.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.Level(level),
	)
	return zapr.NewLogger(zap.New(core))
}

var (
	// TestUsers is a parent-side fixture.
	TestUsers = []record.Record{
		{"id": int64(1), "name": "alice"},
		{"id": int64(2), "name": "bob"},
		{"id": int64(3), "name": "carol"},
	}

	// TestOrders is a child-side fixture keyed to TestUsers by userId.
	TestOrders = []record.Record{
		{"id": int64(101), "userId": int64(1), "total": int64(250)},
		{"id": int64(102), "userId": int64(1), "total": int64(120)},
		{"id": int64(103), "userId": int64(2), "total": int64(75)},
	}

	// TestStock is a composite-key fixture keyed by (sku, origin).
	TestStock = []record.Record{
		{"sku": "A", "origin": "US", "qty": int64(5)},
		{"sku": "A", "origin": "EU", "qty": int64(9)},
		{"sku": "B", "origin": "US", "qty": int64(2)},
	}
)
