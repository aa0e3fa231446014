// zkauthctl drives one round of the Chaum-Pedersen protocol against a
// running zkauthd server: it can register a fresh secret for a user, or
// run a full register-challenge-verify authentication and print the
// minted session id.
//
// Usage:
//
//	zkauthctl register      --user NAME --algo {dl|ec} --addr HOST:PORT
//	zkauthctl authenticate  --user NAME --algo {dl|ec} --addr HOST:PORT
//
// Exit codes: 0 success, 1 usage error, 2 protocol/RPC error.
//
// A full integration run exercising both subcommands against a live
// zkauthd looks like:
//
//	zkauthd --addr :8443 &
//	zkauthctl register     --user alice --algo ec --addr localhost:8443
//	zkauthctl authenticate --user alice --algo ec --addr localhost:8443
package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/tomsons-zkauth/zkauth"
	"github.com/tomsons-zkauth/zkauth/authclient"
	"github.com/tomsons-zkauth/zkauth/params"
	"github.com/tomsons-zkauth/zkauth/wire"
)

// log is zkauthctl's CLI-entry-point logger. It defaults to Info level
// and is raised to Trace in PersistentPreRun if -v was passed, matching
// zkauthd's LoggerFactory-driven setup.
var log logging.LeveledLogger = logging.NewDefaultLoggerFactory().NewLogger("zkauthctl")

func main() {
	var (
		user    string
		algo    string
		addr    string
		verbose bool
	)

	root := &cobra.Command{
		Use: "zkauthctl",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loggerFactory := logging.NewDefaultLoggerFactory()
			if verbose {
				loggerFactory.DefaultLogLevel = logging.LogLevelTrace
			} else {
				loggerFactory.DefaultLogLevel = logging.LogLevelInfo
			}
			log = loggerFactory.NewLogger("zkauthctl")
		},
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "register a fresh secret for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(addr, user, algo)
		},
	}
	authenticateCmd := &cobra.Command{
		Use:   "authenticate",
		Short: "run a full challenge/response authentication",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthenticate(addr, user, algo)
		},
	}

	for _, cmd := range []*cobra.Command{registerCmd, authenticateCmd} {
		cmd.Flags().StringVar(&user, "user", "", "user name")
		cmd.Flags().StringVar(&algo, "algo", "ec", "algorithm: dl or ec")
		cmd.Flags().StringVar(&addr, "addr", "localhost:8443", "server address")
		cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
		cmd.MarkFlagRequired("user")
		root.AddCommand(cmd)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a returned error to the CLI exit code spec.md §6
// requires: 1 for usage errors (cobra's own flag-parsing failures), 2 for
// everything the protocol itself rejected.
func exitCodeFor(err error) int {
	var zerr *zkauth.Error
	if ok := asZkauthError(err, &zerr); ok {
		return 2
	}
	return 1
}

func asZkauthError(err error, target **zkauth.Error) bool {
	for err != nil {
		if e, ok := err.(*zkauth.Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func newClient(addr, algoName string) (*authclient.Client, error) {
	algo, p, err := resolveAlgo(algoName)
	if err != nil {
		return nil, err
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	wc := wire.NewClient(conn)
	return authclient.New(p, algo, wc), nil
}

func resolveAlgo(name string) (wire.Algo, *params.Params, error) {
	switch name {
	case "dl":
		p, err := params.LoadDL()
		if err != nil {
			return 0, nil, err
		}
		return wire.AlgoDL, p, nil
	case "ec":
		p, err := params.LoadEC()
		if err != nil {
			return 0, nil, err
		}
		return wire.AlgoEC, p, nil
	default:
		return 0, nil, fmt.Errorf("unknown algorithm %q: want dl or ec", name)
	}
}

func runRegister(addr, user, algo string) error {
	log.Debugf("dialing %s for %s/%s register", addr, user, algo)
	c, err := newClient(addr, algo)
	if err != nil {
		log.Errorf("register %s: %v", user, err)
		return err
	}
	if err := c.Register(context.Background(), user); err != nil {
		log.Errorf("register %s: %v", user, err)
		return err
	}
	log.Infof("registered %s", user)
	fmt.Printf("registered %s\n", user)
	return nil
}

func runAuthenticate(addr, user, algo string) error {
	log.Debugf("dialing %s for %s/%s authenticate", addr, user, algo)
	c, err := newClient(addr, algo)
	if err != nil {
		log.Errorf("authenticate %s: %v", user, err)
		return err
	}
	ctx := context.Background()
	if err := c.Register(ctx, user); err != nil {
		log.Errorf("authenticate %s: register: %v", user, err)
		return err
	}
	authID, err := c.CreateAuthenticationChallenge(ctx, user)
	if err != nil {
		log.Errorf("authenticate %s: challenge: %v", user, err)
		return err
	}
	sessionID, err := c.VerifyAuthentication(ctx, authID)
	if err != nil {
		log.Errorf("authenticate %s: verify: %v", user, err)
		return err
	}
	log.Infof("authenticated %s, session %s", user, sessionID)
	fmt.Printf("session_id: %s\n", sessionID)
	return nil
}
