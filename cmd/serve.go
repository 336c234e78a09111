package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/api"
	"github.com/spigell/jobmate/internal/assistant"
	"github.com/spigell/jobmate/internal/assistant/gemini"
	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/matcher"
	"github.com/spigell/jobmate/internal/secrets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on")
	serveCmd.Flags().Bool("require-signature", false, "reject ML requests without a valid X-Signature")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("security.require-signature", serveCmd.Flags().Lookup("require-signature"))
}

func serve() {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zl.Sync()

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	zl.Info("starting the jobmate service",
		zap.String("version", version),
		zap.String("environment", config.Environment),
	)

	m, p, err := buildEngines(config, zl)
	if err != nil {
		zl.Fatal("building engines", zap.Error(err))
	}

	secret, err := secrets.LoadOptional(secrets.Source{
		Name:  "shared secret",
		Value: config.Security.SharedSecret,
		File:  config.Security.SharedSecretFile,
	})
	if err != nil {
		zl.Fatal("loading shared secret", zap.Error(err))
	}
	if config.Security.RequireSignature && secret == "" {
		zl.Warn("signature required but no shared secret configured, requests are not verified",
			zap.String("hint", "set security.shared-secret-file or JOBMATE_SECURITY_SHARED_SECRET"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assistantOpts := []assistant.Option{assistant.WithMaxLogLength(config.AI.Gemini.MaxLogLength)}
	if gen, err := newGenerator(ctx, config.AI); err != nil {
		zl.Warn("skipping AI answers", zap.Error(err))
	} else if gen != nil {
		assistantOpts = append(assistantOpts, assistant.WithGenerator(gen, gen.Model()))
		zl.Info("AI answers enabled", logger.AIFields(gemini.Provider, gen.Model())...)
	}

	server := api.New(api.Config{
		Environment:      config.Environment,
		AllowedOrigins:   config.CORS.AllowedOrigins,
		SharedSecret:     secret,
		RequireSignature: config.Security.RequireSignature,
		MaxUploadBytes:   config.Server.MaxUploadBytes,
		MaxLogLength:     config.AI.Gemini.MaxLogLength,
	}, m, p, assistant.New(m, p, zl, assistantOpts...), zl)

	httpServer := &http.Server{
		Addr:         config.Server.Addr(),
		Handler:      server.Routes(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.Bool("signature_required", server.SignatureRequired()),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("serving http", zap.Error(err))
		}
	case <-ctx.Done():
		zl.Info("shutting down", zap.Duration("timeout", config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			zl.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	zl.Info("stopped")
}

// buildEngines fits the career model once and wires the read-only engines.
func buildEngines(config *Config, logger *zap.Logger) (*matcher.Matcher, *career.Predictor, error) {
	m, err := matcher.New(matcher.WithStrategy(config.Matcher.Strategy))
	if err != nil {
		return nil, nil, fmt.Errorf("matcher: %w", err)
	}

	start := time.Now()
	model, err := career.FitModel(config.Model.ModelConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("career model: %w", err)
	}
	logger.Info("career model fitted",
		zap.Int("samples", config.Model.Samples),
		zap.Int("trees", config.Model.Trees),
		zap.Strings("classes", model.Classes()),
		zap.Duration("took", time.Since(start)),
	)

	p, err := career.NewPredictor(model, career.WithTopK(config.Model.TopK))
	if err != nil {
		return nil, nil, fmt.Errorf("career predictor: %w", err)
	}

	return m, p, nil
}

// newGenerator returns nil without error when AI answers are disabled.
func newGenerator(ctx context.Context, cfg *AIConfig) (*gemini.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or JOBMATE_AI_GEMINI_API_KEY_FILE)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries)
}
