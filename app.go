package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/mexc-tools/mexc-bot-panel/models"
	m "github.com/mexc-tools/mexc-bot-panel/modules"
)

func main() {
	endpoint := flag.String("endpoint", m.EndpointFromEnv(), "bot control API base URL")
	apiKey := flag.String("apiKey", "", "exchange api key")
	secretKey := flag.String("secretKey", "", "exchange secret key")
	symbol := flag.String("symbol", models.DefaultSymbol, "exchange pair")
	buyQuantity := flag.Float64("buyQuantity", 0, "buy quantity per order")
	sellQuantity := flag.Float64("sellQuantity", 0, "sell quantity per order")
	maxPriceDeviation := flag.Float64("maxPriceDeviation", models.DefaultMaxPriceDeviation, "max deviation from initial price")
	config := flag.String("config", "", "yaml file with panel defaults")
	serve := flag.Bool("serve", false, "serve the panel as a local web app")
	addr := flag.String("addr", ":8080", "listen address in serve mode")
	oneshot := flag.String("oneshot", "", "run a single command and exit: start|stop|status|health")
	debug := flag.Bool("debug", false, "log outbound requests in curl format")
	flag.Parse()

	logger := logrus.New()
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := models.Configuration{
		ApiKey:            *apiKey,
		SecretKey:         *secretKey,
		Symbol:            *symbol,
		BuyQuantity:       *buyQuantity,
		SellQuantity:      *sellQuantity,
		MaxPriceDeviation: *maxPriceDeviation,
	}

	if *config != "" {
		defaults, err := m.LoadDefaults(*config)
		if err != nil {
			logger.WithError(err).Fatal("cannot load defaults file")
		}

		// flags win, file fills the gaps
		if cfg.ApiKey == "" {
			cfg.ApiKey = defaults.ApiKey
		}
		if cfg.SecretKey == "" {
			cfg.SecretKey = defaults.SecretKey
		}
		if cfg.Symbol == models.DefaultSymbol && defaults.Symbol != "" {
			cfg.Symbol = defaults.Symbol
		}
		if cfg.BuyQuantity == 0 {
			cfg.BuyQuantity = defaults.BuyQuantity
		}
		if cfg.SellQuantity == 0 {
			cfg.SellQuantity = defaults.SellQuantity
		}
		if cfg.MaxPriceDeviation == models.DefaultMaxPriceDeviation && defaults.MaxPriceDeviation != 0 {
			cfg.MaxPriceDeviation = defaults.MaxPriceDeviation
		}
		if *endpoint == m.EndpointFromEnv() && defaults.Endpoint != "" {
			*endpoint = defaults.Endpoint
		}
	}

	ratelimiter := ratelimit.New(2)

	client := m.NewBotClient(*endpoint, logger, ratelimiter)
	client.Debug = *debug

	panel := m.NewPanel(logger)
	panel.SeedConfig(cfg)

	synchronizer := m.NewSynchronizer(panel, client, logger)
	controller := m.NewController(panel, client, synchronizer, logger)

	if *oneshot != "" {
		os.Exit(m.RunOneshot(*oneshot, controller, client, logger))
	}

	synchronizer.Start()
	defer func() {
		synchronizer.Stop()
		panel.Close()
	}()

	if *serve {
		hub := m.NewWsHub(panel, logger)
		server := m.NewPanelServer(panel, controller, hub, *addr, logger)
		if err := server.Serve(); err != nil {
			logger.WithError(err).Fatal("panel server stopped")
		}
		return
	}

	if err := m.RunTui(panel, controller); err != nil {
		logger.WithError(err).Fatal("panel terminated")
	}
}
