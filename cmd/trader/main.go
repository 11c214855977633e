package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/asluchevskiy/layerzero-aptos/pkg/aptos"
	"github.com/asluchevskiy/layerzero-aptos/pkg/bridge"
	"github.com/asluchevskiy/layerzero-aptos/pkg/config"
	"github.com/asluchevskiy/layerzero-aptos/pkg/evm"
	"github.com/asluchevskiy/layerzero-aptos/pkg/metrics"
	"github.com/asluchevskiy/layerzero-aptos/pkg/trader"
	"github.com/asluchevskiy/layerzero-aptos/pkg/wallet"
)

var (
	optionConfig = &cli.StringFlag{
		Name:    "config",
		Usage:   "path to trader config file",
		Value:   "config.yml",
		EnvVars: []string{"LAYERZERO_TRADER_CONFIG"},
	}
)

func main() {
	app := &cli.App{
		Name:  "layerzero-aptos-trader",
		Usage: "Bridge ETH to Aptos through the LayerZero bridge for a list of wallets",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Process every wallet from the configured CSV file",
				Flags: []cli.Flag{
					optionConfig,
				},
				Action: func(c *cli.Context) error {
					return run(c)
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.Writer, "exited with error: %v\n", err)
	}
}

func setupLogging(logLevel, logFile string) {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse log level")
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	if logFile == "" {
		log.Logger = log.Output(consoleWriter)
		return
	}
	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(consoleWriter, fileWriter))
}

func run(c *cli.Context) error {
	configFilePath := c.String(optionConfig.Name)
	cfg, err := config.Load(configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Check(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	setupLogging(cfg.LogLevel, cfg.LogFile)

	// A bad key in any record aborts the run before any wallet is processed.
	wallets, err := wallet.LoadCSV(cfg.WalletsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load wallets")
		return err
	}
	log.Info().Msgf("loaded %d wallets from %s", len(wallets), cfg.WalletsFile)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	interruptSigChan := make(chan os.Signal, 1)
	signal.Notify(interruptSigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interruptSigChan
		log.Info().Msg("interrupt received, finishing current step...")
		cancel()
	}()

	srcClient, err := evm.Dial(ctx, cfg.Source().RPCUrl, cfg.Source().ExplorerUrl)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up source chain client")
		return err
	}
	aptosBridge, err := bridge.New(srcClient.ChainID(), srcClient.Raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up bridge contract")
		return err
	}
	aptosNode, err := aptos.NewNode(cfg.Aptos().RPCUrl, cfg.Aptos().ExplorerUrl)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up aptos node")
		return err
	}
	metricsClient := metrics.New(ctx, cfg.Datadog.Enabled)

	t := trader.New(cfg, srcClient, aptosBridge, aptosNode, metricsClient)
	results := t.Run(ctx, wallets)

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	log.Info().Msgf("done: %d wallets processed, %d failed", len(results), failed)
	return nil
}
