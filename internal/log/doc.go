// Package log provides slog-based logging that never writes passwords.
//
// pwaffinity handles plaintext passwords on every code path, so every logger
// the CLI creates wraps its handler in a SecureHandler:
//   - attributes whose key names a secret (password, passphrase, secret,
//     token, ...) are replaced by MaskValue
//   - string values that look like credentials (bearer tokens, JWTs,
//     private key blocks) are replaced as well
//   - groups and attributes added with Logger.With are sanitized too
//
// # Usage
//
//	logger := log.New(os.Stderr, verbose, log.FormatText)
//	logger.Debug("password analyzed", "password", pw) // password=***REDACTED***
//
// The logger is Warn level by default and Debug level in verbose mode.
package log
