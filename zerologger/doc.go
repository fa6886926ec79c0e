// Package zerologger is a logbase logger over rs/zerolog with safe lifecycle
// management and file rotation.
//
// Key features
//   - Level gating and enrichment from the embedded logbase.Processor; zerolog
//     only formats and writes
//   - Graceful shutdown that waits for in-flight writes (bounded timeout)
//   - File rotation via lumberjack and configurable console formatting
//   - Config loading through viper with LOGBASE_* environment overrides
//
// Typical usage
//
//	cfg, err := zerologger.LoadConfig("logging.yaml")
//	if err != nil { panic(err) }
//	svc, err := zerologger.NewService(workingDir, cfg)
//	if err != nil { panic(err) }
//	defer svc.Close()
//
//	_ = svc.Info("processed", logbase.Fields{"user_id": id})
//	_ = svc.At("error").Err(err).Str("request_id", rid).Msg("failed")
package zerologger
