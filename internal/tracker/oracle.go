package tracker

import (
	"bytes"
	"errors"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/store"
)

// Oracle answers whether an app is running right now.
type Oracle interface {
	IsRunning(app string) bool
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(app string) bool

func (f OracleFunc) IsRunning(app string) bool {
	return f(app)
}

// ProcessOracle matches app against process names with pgrep -x. The
// session app is always running.
type ProcessOracle struct {
	logger zerolog.Logger
}

func NewProcessOracle(logger zerolog.Logger) *ProcessOracle {
	return &ProcessOracle{logger: logger.With().Str("component", "oracle").Logger()}
}

func (o *ProcessOracle) IsRunning(app string) bool {
	if app == store.SessionApp {
		return true
	}
	if app == "" {
		return false
	}

	out, err := exec.Command("pgrep", "-x", app).Output()
	if err != nil {
		// pgrep exits 1 when nothing matches.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false
		}
		o.logger.Warn().Err(err).Str("app", app).Msg("pgrep failed")
		return false
	}
	return len(bytes.TrimSpace(out)) > 0
}
