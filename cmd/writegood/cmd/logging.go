package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// newLogger creates the process logger. Logs always go to stderr: stdout
// carries reports and, for the language server, the protocol stream.
func newLogger(cmd *cli.Command) (*logrus.Logger, error) {
	return buildLogger(cmd.String("log-level"), os.Stderr)
}

func buildLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger, nil
}
