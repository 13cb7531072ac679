// Package log provides the logging abstraction used across lspwire.
//
// Components log through the Logger interface so the transport can be
// embedded in a host server that already has its own logging. A zerolog
// adapter and a no-op logger are provided:
//
//	logger, err := log.NewZerologAdapter(os.Stderr, "debug")
//
// Log output must never go to the channel the transport writes frames to;
// an editor peer would reject the stream. The zerolog adapter therefore
// defaults to stderr.
package log
