package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/lumapay/paypal-adapter/internal/metrics"
	"github.com/lumapay/paypal-adapter/internal/relay"
	intsecrets "github.com/lumapay/paypal-adapter/internal/secrets"
	"github.com/lumapay/paypal-adapter/pkg/logger"
	"github.com/lumapay/paypal-adapter/pkg/paypal"
	pkgsecrets "github.com/lumapay/paypal-adapter/pkg/secrets"
	"github.com/lumapay/paypal-adapter/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := relay.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [paypal-webhookd]...")

	// --- Resolve PayPal credentials ---
	clientCfg := paypal.Config{
		ClientID:           cfg.PayPalClientID,
		ClientSecret:       cfg.PayPalClientSecret,
		Mode:               paypal.Mode(cfg.PayPalMode),
		WebhookID:          cfg.PayPalWebhookID,
		PayoutNote:         cfg.PayoutNote,
		PayoutEmailSubject: cfg.PayoutEmailSubject,
	}
	if cfg.SecretName != "" {
		awsProvider, err := pkgsecrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to init AWS provider", "error", err)
		}
		cache := pkgsecrets.NewCache[pkgsecrets.Credentials](cfg.CacheTTL)
		resolver := intsecrets.NewResolver(logg.Desugar(), awsProvider, cache, cfg.SecretName)
		creds, err := resolver.Resolve(ctx)
		if err != nil {
			logg.Fatalw("failed to resolve PayPal credentials", "error", err)
		}
		clientCfg.ClientID = creds.ClientID
		clientCfg.ClientSecret = creds.ClientSecret
		if creds.WebhookID != "" {
			clientCfg.WebhookID = creds.WebhookID
		}
	}
	logg.Infow("paypal credentials loaded",
		"mode", cfg.PayPalMode,
		"client_id", utils.MaskSecret(clientCfg.ClientID))

	// --- PayPal client ---
	client, err := paypal.NewClient(logg.Desugar(), clientCfg)
	if err != nil {
		logg.Fatalw("failed to init PayPal client", "error", err)
	}

	// --- Store (Redis + optional Postgres journal) ---
	if cfg.DatabaseURL != "" {
		logg.Info("journal DSN: ", utils.MaskDSN(cfg.DatabaseURL))
	}
	st, err := relay.NewHybrid(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisPass, cfg.DatabaseURL, logg.Desugar())
	if err != nil {
		logg.Fatalw("failed to init store", "error", err)
	}
	defer st.Close() //nolint:errcheck

	// --- Publisher ---
	var pub relay.Publisher
	switch cfg.Broker {
	case "rabbitmq":
		pub, err = relay.NewAMQPPublisher(cfg.AMQPURL, "paypal.events", cfg.OutboundSubject, logg.Desugar())
	default:
		var nc *nats.Conn
		nc, err = nats.Connect(cfg.NATSURL)
		if err == nil {
			pub, err = relay.NewNATSPublisher(nc, cfg.OutboundSubject, logg.Desugar())
		}
	}
	if err != nil {
		logg.Fatalw("failed to init publisher", "error", err, "broker", cfg.Broker)
	}
	defer pub.Close() //nolint:errcheck

	// --- Metrics ---
	metrics.StartServer(fmt.Sprintf(":%d", cfg.MetricsPort))

	// --- HTTP server ---
	h := relay.NewHandler(logg.Desugar(), client.Webhooks, st, pub, cfg.DedupTTL)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h.RegisterRoutes(app)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("server stopped", "error", err)
		}
	}()
	logg.Infow("webhook relay listening", "port", cfg.Port, "broker", cfg.Broker)

	<-ctx.Done()
	logg.Info("shutting down...")
	if err := app.Shutdown(); err != nil {
		logg.Warnw("shutdown error", "error", err)
	}
}
