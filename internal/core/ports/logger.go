package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetDebug toggles debug level output.
	SetDebug(enable bool)
	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
