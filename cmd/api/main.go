package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aimissoula/agency-platform/internal/adcopy"
	"github.com/aimissoula/agency-platform/internal/api/router"
	"github.com/aimissoula/agency-platform/internal/calls"
	"github.com/aimissoula/agency-platform/internal/chat"
	appconfig "github.com/aimissoula/agency-platform/internal/config"
	"github.com/aimissoula/agency-platform/internal/http/handlers"
	"github.com/aimissoula/agency-platform/internal/leads"
	"github.com/aimissoula/agency-platform/internal/llm"
	"github.com/aimissoula/agency-platform/internal/notify"
	"github.com/aimissoula/agency-platform/internal/observability/metrics"
	"github.com/aimissoula/agency-platform/internal/roi"
	"github.com/aimissoula/agency-platform/internal/vapi"
	"github.com/aimissoula/agency-platform/internal/webchat"
	"github.com/aimissoula/agency-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting agency-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	leadMetrics := metrics.NewLeadMetrics(nil)

	// Completion chain: OpenAI when configured, Gemini as fallback.
	model := buildLLM(cfg, logger)
	if model == nil {
		logger.Warn("no LLM provider configured; chat and ad copy endpoints disabled")
	}

	// Voice platform client for outbound demo calls.
	var voiceClient *vapi.Client
	if cfg.VapiAPIKey != "" {
		client, err := vapi.New(vapi.Config{
			BaseURL: cfg.VapiBaseURL,
			APIKey:  cfg.VapiAPIKey,
			Logger:  logger.Logger,
		})
		if err != nil {
			logger.Error("failed to build vapi client", "error", err)
			os.Exit(1)
		}
		voiceClient = client
	} else {
		logger.Warn("VAPI_API_KEY not set; outbound call endpoint disabled")
	}

	// Lead notification channel, degrading to structured logging.
	sender := buildEmailSender(cfg, logger)
	service := notify.NewService(sender, cfg.NotificationEmail, logger)
	if !service.EmailEnabled() {
		logger.Warn("no email channel configured; leads will be logged only")
	}

	chatHandler := chat.NewHandler(chat.Config{
		Client:      model,
		Logger:      logger,
		Metrics:     leadMetrics,
		MaxTokens:   int32(cfg.ChatMaxTokens),
		Temperature: float32(cfg.ChatTemperature),
	})
	adcopyHandler := adcopy.NewHandler(adcopy.Config{
		Client:      model,
		Logger:      logger,
		Metrics:     leadMetrics,
		Temperature: float32(cfg.AdCopyTemperature),
	})
	var callsHandler *calls.Handler
	if voiceClient != nil {
		callsHandler = calls.NewHandler(calls.Config{
			Client:        voiceClient,
			AssistantID:   cfg.VapiAssistantID,
			PhoneNumberID: cfg.VapiPhoneNumberID,
			Logger:        logger,
			Metrics:       leadMetrics,
		})
	}
	webhookHandler := handlers.NewVapiWebhookHandler(handlers.VapiWebhookConfig{
		Notifier: service,
		Logger:   logger.Component("webhooks"),
		Metrics:  leadMetrics,
	})
	webchatHandler := webchat.NewHandler(webchat.Config{
		LLM:        model,
		Notifier:   service,
		Logger:     logger.Component("webchat"),
		GateTurns:  cfg.ChatGateTurns,
		SessionTTL: cfg.WidgetSessionTTL,
	})
	defer webchatHandler.Close()

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		AdCopyHandler:      adcopyHandler,
		CallsHandler:       callsHandler,
		LeadsHandler:       leads.NewHandler(service, logger),
		ROIHandler:         roi.NewHandler(service, float64(cfg.ROIHourlyRate), logger),
		VapiWebhook:        webhookHandler,
		WidgetConfig:       handlers.NewWidgetConfigHandler(cfg.ChatGateTurns, cfg.VoiceMaxDurationSeconds),
		Webchat:            webchatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func buildLLM(cfg *appconfig.Config, logger *logging.Logger) llm.Client {
	var primary, fallback llm.Client

	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("failed to build openai client", "error", err)
		} else {
			primary = client
		}
	}
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to build gemini client", "error", err)
		} else {
			fallback = client
		}
	}

	switch {
	case primary != nil && fallback != nil:
		return llm.NewFallbackClient(primary, fallback, logger.Logger)
	case primary != nil:
		return primary
	case fallback != nil:
		return fallback
	default:
		return nil
	}
}

func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	default:
		return nil
	}
}
