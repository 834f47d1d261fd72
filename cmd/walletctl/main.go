// walletctl answers hardware wallet interrupted-execution requests from a
// pre-registered session: hex-encoded requests on stdin, hex-encoded
// responses on stdout.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danmuck/walletctl/internal/command"
	"github.com/danmuck/walletctl/internal/keys"
	"github.com/danmuck/walletctl/internal/observability"
)

func main() {
	sessionPath := flag.String("session", "", "session TOML with known preimages, lists and pubkey lists")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := observability.InitLogger("walletctl", *debug)

	interp := command.New(keys.Deriver{}, command.WithLogger(logger))
	if *sessionPath != "" {
		cfg, err := loadSessionConfig(*sessionPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("session config")
		}
		if err := cfg.register(interp); err != nil {
			logger.Fatal().Err(err).Msg("session registration")
		}
	}

	if err := serve(os.Stdin, os.Stdout, interp, logger); err != nil {
		logger.Fatal().Err(err).Msg("read requests")
	}
}

// serve answers one hex request per line. Blank lines and #-comments are
// skipped; a failed request is reported and the loop continues, matching
// the protocol rule that a failure never corrupts state for later requests.
func serve(r io.Reader, w io.Writer, interp *command.Interpreter, logger zerolog.Logger) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := hex.DecodeString(line)
		if err != nil {
			logger.Error().Err(err).Msg("request is not valid hex")
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		resp, err := interp.Execute(req)
		if err != nil {
			logger.Error().Err(err).Msg("request failed")
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "%x\n", resp)
	}
	return sc.Err()
}
