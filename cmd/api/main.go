package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/togetherfinance/lead-intake/internal/api/router"
	appconfig "github.com/togetherfinance/lead-intake/internal/config"
	"github.com/togetherfinance/lead-intake/internal/leads"
	"github.com/togetherfinance/lead-intake/internal/notify"
	"github.com/togetherfinance/lead-intake/internal/observability/metrics"
	"github.com/togetherfinance/lead-intake/internal/web"
	"github.com/togetherfinance/lead-intake/pkg/logging"
)

func main() {
	// Local development convenience; production reads real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-intake server",
		"env", cfg.Env,
		"port", cfg.Port,
		"email_provider", cfg.EmailProvider,
	)

	sender := buildSender(cfg, logger)
	if sender == nil || cfg.MailTo == "" || cfg.FromEmail == "" {
		// The contact endpoint degrades to a configuration error instead of
		// the process refusing to start; the rest of the site still serves.
		logger.Warn("email delivery not fully configured; contact submissions will be rejected",
			"provider", cfg.EmailProvider,
			"mail_to_set", cfg.MailTo != "",
			"from_email_set", cfg.FromEmail != "",
		)
		sender = nil
	}

	leadMetrics := metrics.NewLeadMetrics(prometheus.DefaultRegisterer)

	leadsHandler := leads.NewHandler(leads.HandlerConfig{
		Sender:      sender,
		MailTo:      cfg.MailTo,
		MailToName:  cfg.FromName,
		SiteURL:     cfg.SiteURL,
		SendTimeout: cfg.SendTimeout,
		Metrics:     leadMetrics,
		Logger:      logger,
	})

	siteHandler, err := web.NewHandler(logger)
	if err != nil {
		logger.Error("failed to load embedded site", "error", err)
		os.Exit(1)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		SiteHandler:        siteHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ContactRatePerSec:  cfg.RateLimitPerSec,
		ContactRateBurst:   cfg.RateLimitBurst,
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

// buildSender constructs the configured delivery adapter. A nil return means
// the provider is not configured and the handler should degrade.
func buildSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	case "sendgrid-rest":
		s := notify.NewRESTSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	case "ses":
		client, err := buildSESClient(cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			return nil
		}
		s := notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	case "postmark":
		s := notify.NewPostmarkSender(notify.PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			FromEmail:    cfg.FromEmail,
			FromName:     cfg.FromName,
		}, logger)
		if s == nil {
			return nil
		}
		return s
	case "stub":
		return notify.NewStubEmailSender(logger)
	default:
		logger.Error("unknown email provider", "provider", cfg.EmailProvider)
		return nil
	}
}

func buildSESClient(cfg *appconfig.Config) (*sesv2.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loaders...)
	if err != nil {
		return nil, err
	}
	return sesv2.NewFromConfig(awsCfg), nil
}
