package flappy

import (
	"io"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
