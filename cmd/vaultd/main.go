package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/commands/server"
	"github.com/iov-one/vault/cmd/vaultd/app"
)

var (
	varHome     *string
	varLogLevel *string
)

func init() {
	// .env values do not override the environment
	_ = godotenv.Load()

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vaultd")
	varHome = flag.String("home", envOr("VAULTD_HOME", defaultHome), "directory to store files under")
	varLogLevel = flag.String("log-level", envOr("VAULTD_LOG_LEVEL", "info"), "log level filter, for example info or main:debug,*:error")
}

func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

func helpMessage() {
	fmt.Println("vaultd")
	fmt.Println("         Savings account ABCI Application")
	fmt.Println("")
	fmt.Println("help     Print this message")
	fmt.Println("init     Write a genesis file funding one owner address")
	fmt.Println("start    Run the abci server")
	fmt.Println("validate Check genesis files")
	fmt.Println("keys     Print the address of a hex encoded key seed")
	fmt.Println("run      Replay a script of transactions in memory")
	fmt.Println("version  Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(genInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(generateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "keys":
		err = keysCmd(os.Stdout, rest)
	case "run":
		err = runCmd(os.Stdout, logger, rest)
	case "version":
		fmt.Println(vault.Version())
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", "command", cmd, "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "vaultd")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
