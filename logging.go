package linsigma

import (
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// SetupLogging routes the gnark logger, which Prove and Verify write to, to
// stderr. LINSIGMA_DEBUG=1 lets their debug events through.
func SetupLogging() {
	level := zerolog.InfoLevel
	if os.Getenv("LINSIGMA_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger.Set(zerolog.New(output).Level(level).With().Timestamp().Logger())
}
