// zkauthd runs the Chaum-Pedersen authentication server: it loads the
// canonical DL and EC parameter sets (or generates fresh ones when
// -dl-bits is given), listens for RPC connections, and serves Register,
// CreateAuthenticationChallenge, and VerifyAuthentication until
// interrupted.
//
// Usage:
//
//	zkauthd [--addr HOST:PORT] [--dl-bits N] [-v]
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/tomsons-zkauth/zkauth/dispatcher"
	"github.com/tomsons-zkauth/zkauth/params"
	"github.com/tomsons-zkauth/zkauth/wire"
)

func main() {
	var (
		addr    string
		dlBits  int
		verbose bool
	)

	root := &cobra.Command{
		Use:   "zkauthd",
		Short: "zero-knowledge password-less authentication server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, dlBits, verbose)
		},
	}
	root.Flags().StringVar(&addr, "addr", ":8443", "address to listen on")
	root.Flags().IntVar(&dlBits, "dl-bits", 0, "generate fresh DL/EC params with this DL bit length instead of loading canonical constants")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(addr string, dlBits int, verbose bool) error {
	loggerFactory := logging.NewDefaultLoggerFactory()
	if verbose {
		loggerFactory.DefaultLogLevel = logging.LogLevelTrace
	} else {
		loggerFactory.DefaultLogLevel = logging.LogLevelInfo
	}
	log := loggerFactory.NewLogger("zkauthd")

	dlParams, ecParams, err := loadOrGenerateParams(dlBits)
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	d := dispatcher.New(dlParams, ecParams, loggerFactory)
	srv := wire.NewServer(wire.ServerConfig{
		Listener:      listener,
		Handler:       d,
		LoggerFactory: loggerFactory,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	log.Infof("zkauthd listening on %s", listener.Addr())

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Stop()
	case err := <-serveErr:
		return err
	}
}

func loadOrGenerateParams(dlBits int) (dlParams, ecParams *params.Params, err error) {
	if dlBits > 0 {
		dlParams, err = params.GenerateDL(dlBits)
		if err != nil {
			return nil, nil, err
		}
		ecParams, err = params.GenerateEC()
		if err != nil {
			return nil, nil, err
		}
		return dlParams, ecParams, nil
	}

	dlParams, err = params.LoadDL()
	if err != nil {
		return nil, nil, err
	}
	ecParams, err = params.LoadEC()
	if err != nil {
		return nil, nil, err
	}
	return dlParams, ecParams, nil
}
