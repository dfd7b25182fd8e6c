package assignment

import "github.com/orris-inc/leadrouter/internal/shared/logger"

// noopLogger discards everything. The engine's selection algorithm is
// exercised end-to-end against a real database in these tests, so there
// is nothing interesting to assert about log calls themselves.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                    {}
func (noopLogger) Info(msg string, args ...any)                     {}
func (noopLogger) Warn(msg string, args ...any)                     {}
func (noopLogger) Error(msg string, args ...any)                    {}
func (noopLogger) Fatal(msg string, args ...any)                    {}
func (n noopLogger) With(args ...any) logger.Interface               { return n }
func (n noopLogger) Named(name string) logger.Interface              { return n }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})   {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})   {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Fatalw(msg string, keysAndValues ...interface{})  {}
