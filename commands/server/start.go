package server

import (
	"flag"

	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault/errors"
)

// AppGenerator builds the application once the home directory, logger
// and debug switch are known.
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

type startOptions struct {
	bind  string
	debug bool
}

func parseStartFlags(args []string) (startOptions, error) {
	var opts startOptions
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&opts.bind, "bind", "tcp://localhost:26658", "abci socket address")
	fs.BoolVar(&opts.debug, "debug", false, "include internal error details in responses")
	err := fs.Parse(args)
	return opts, err
}

// StartCmd serves the application on the abci socket until the process
// receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseStartFlags(args)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	application, err := gen(home, logger, opts.debug)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(opts.bind, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "abci listener: %s", err)
	}
	srv.SetLogger(logger.With("module", "abci-server"))
	logger.Info("Serving abci", "bind", opts.bind, "debug", opts.debug)
	if err := srv.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "abci server: %s", err)
	}

	cmn.TrapSignal(logger, func() {
		if err := srv.Stop(); err != nil {
			logger.Error("Stopping abci server", "err", err)
		}
	})
	return nil
}
