package cmd

import (
	"io"

	"github.com/Feilkin/blob-game/config"
	"github.com/Feilkin/blob-game/log"
	"github.com/urfave/cli"
)

var logger = log.New("blob-bvh")

// Load the config file named by the global --config flag and configure
// logging from it. The -v and -vv flags override the configured level. The
// returned closer releases the log file sink, if any.
func setupLogging(ctx *cli.Context) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(ctx.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if ctx.GlobalBool("v") {
		level = log.Info
	}
	if ctx.GlobalBool("vv") {
		level = log.Debug
	}

	var closer io.Closer = nopCloser{}
	if cfg.Logging.File != "" {
		closer = log.SetFileSink(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	}
	log.SetLevel(level)

	return cfg, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
