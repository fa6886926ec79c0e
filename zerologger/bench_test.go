package zerologger

import (
	"fmt"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/logbase"
)

func BenchmarkReport(b *testing.B) {
	s, _ := newFileLogger(b, "info")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Info("hello", logbase.Fields{"k": "v", "n": i})
	}
}

func BenchmarkReport_Disabled(b *testing.B) {
	s, _ := newFileLogger(b, "error")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Debug("dropped", logbase.Fields{"n": i})
	}
}

func BenchmarkReportError_DetailedChain3(b *testing.B) {
	s, _ := newFileLogger(b, "error")
	err := smerrors.New("op_0").Msg("root cause message")
	for i := 1; i < 3; i++ {
		err = smerrors.New(smerrors.Op(fmt.Sprintf("op_%d", i))).Err(err).Msg("wrapped message")
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.ReportError(err)
	}
}

func BenchmarkParallel_Event(b *testing.B) {
	s, _ := newFileLogger(b, "info")
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = s.At("info").Str("k", "v").Msg("hi")
		}
	})
}
