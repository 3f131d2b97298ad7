package relay

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lumapay/paypal-adapter/internal/metrics"
	"github.com/lumapay/paypal-adapter/pkg/paypal"
)

// SignatureVerifier is satisfied by *paypal.WebhookVerifier.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, headers paypal.WebhookHeaders, eventBody []byte) (bool, error)
}

// Handler receives PayPal webhook deliveries, verifies their signatures,
// deduplicates them, and republishes the verified events.
type Handler struct {
	logger    *zap.Logger
	verifier  SignatureVerifier
	store     Store
	publisher Publisher
	dedupTTL  time.Duration
}

// NewHandler creates a webhook relay handler.
func NewHandler(logger *zap.Logger, verifier SignatureVerifier, store Store, publisher Publisher, dedupTTL time.Duration) *Handler {
	if dedupTTL <= 0 {
		dedupTTL = 72 * time.Hour
	}
	return &Handler{
		logger:    logger,
		verifier:  verifier,
		store:     store,
		publisher: publisher,
		dedupTTL:  dedupTTL,
	}
}

// RegisterRoutes mounts the relay endpoints on the Fiber app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/webhooks/paypal", h.HandleWebhook)
	app.Get("/healthz", h.HandleHealth)
}

// HandleWebhook processes one webhook delivery.
// POST /webhooks/paypal
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	ctx := c.UserContext()
	body := c.Body()

	headers := paypal.WebhookHeaders{
		AuthAlgo:         c.Get(paypal.HeaderAuthAlgo),
		CertURL:          c.Get(paypal.HeaderCertURL),
		TransmissionID:   c.Get(paypal.HeaderTransmissionID),
		TransmissionSig:  c.Get(paypal.HeaderTransmissionSig),
		TransmissionTime: c.Get(paypal.HeaderTransmissionTime),
	}

	verified, err := h.verifier.VerifySignature(ctx, headers, body)
	if err != nil {
		h.logger.Warn("relay.webhook.verify_error", zap.Error(err))
		metrics.IncWebhookEvent("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid payload",
		})
	}
	if !verified {
		h.logger.Warn("relay.webhook.rejected",
			zap.String("transmission_id", headers.TransmissionID))
		metrics.IncWebhookEvent("rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "signature verification failed",
		})
	}

	ev, ok := newEvent(body)
	if !ok {
		metrics.IncWebhookEvent("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing event id",
		})
	}

	first, err := h.store.MarkProcessed(ctx, ev.ID, h.dedupTTL)
	if err != nil {
		h.logger.Error("relay.webhook.dedup_failed",
			zap.Error(err),
			zap.String("event_id", ev.ID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "store unavailable",
		})
	}
	if !first {
		h.logger.Info("relay.webhook.duplicate",
			zap.String("event_id", ev.ID))
		metrics.IncWebhookEvent("duplicate")
		return c.JSON(fiber.Map{"status": "duplicate"})
	}

	if err := h.store.JournalEvent(ctx, ev); err != nil {
		// Journal failures do not block the relay; the event is already
		// marked seen and will still be published.
		h.logger.Warn("relay.webhook.journal_failed",
			zap.Error(err),
			zap.String("event_id", ev.ID))
	}

	if err := h.publisher.Publish(ctx, ev); err != nil {
		h.logger.Error("relay.webhook.publish_failed",
			zap.Error(err),
			zap.String("event_id", ev.ID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "publish failed",
		})
	}

	h.logger.Info("relay.webhook.relayed",
		zap.String("event_id", ev.ID),
		zap.String("event_type", ev.EventType),
		zap.String("correlation_id", ev.CorrelationID.String()))
	metrics.IncWebhookEvent("verified")

	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleHealth reports store connectivity.
// GET /healthz
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	if err := h.store.HealthCheck(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
