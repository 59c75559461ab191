// tokstat demo entry point.
//
// Usage:
//
//	tokstat demo                        # tokenize a sample string and print stats
//	tokstat demo --config tokstat.yaml  # with a config file
//	tokstat version                     # show version
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tokstat/tokstat/config"
	"github.com/tokstat/tokstat/embedding"
	"github.com/tokstat/tokstat/internal/metrics"
	"github.com/tokstat/tokstat/tokenizer"
	"github.com/tokstat/tokstat/usage"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		runDemo(nil)
		return
	}

	switch os.Args[1] {
	case "demo":
		runDemo(os.Args[2:])
	case "version":
		fmt.Printf("tokstat %s (%s)\n", Version, GitCommit)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokstat - token usage statistics and text encodings

Commands:
  demo       Tokenize a sample string and print usage statistics
  version    Show version information

Flags (demo):
  --config   Path to YAML config file`)
}

func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	text := fs.String("text", "hello world", "Text to tokenize")
	fs.Parse(args)

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("starting tokstat",
		zap.String("version", Version),
		zap.String("encoding", cfg.Tokenizer.Encoding))

	tok, err := tokenizer.NewTiktoken(cfg.Tokenizer.Encoding)
	if err != nil {
		logger.Fatal("tokenizer init failed", zap.Error(err))
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector("tokstat", prometheus.DefaultRegisterer, logger)
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	tracker := newTracker(logger, collector)
	svc := newService(tok, tracker, logger, collector)

	tokens, err := svc.Encode(*text)
	if err != nil {
		logger.Fatal("encode failed", zap.Error(err))
	}
	fmt.Printf("text:    %q\n", *text)
	fmt.Printf("tokens:  %v\n", tokens)
	fmt.Printf("count:   %d\n", len(tokens))
	fmt.Printf("total:   %d\n", tracker.Current().TotalTokens)

	// Compare the text against itself and against its token-reversed form.
	vec := embedding.TokensToVector(tokens)
	rev := make([]float64, len(vec))
	for i, v := range vec {
		rev[len(rev)-1-i] = v
	}
	if sim, err := svc.CosineSimilarity(vec, vec); err == nil {
		fmt.Printf("self similarity:     %.4f\n", sim)
	}
	if sim, err := svc.CosineSimilarity(vec, rev); err == nil {
		fmt.Printf("reversed similarity: %.4f\n", sim)
	}
}

func newTracker(logger *zap.Logger, collector *metrics.Collector) *usage.Tracker {
	opts := []usage.Option{usage.WithLogger(logger)}
	if collector != nil {
		opts = append(opts, usage.WithRecorder(collector))
	}
	return usage.NewTracker(opts...)
}

func newService(tok tokenizer.Tokenizer, tracker *usage.Tracker, logger *zap.Logger, collector *metrics.Collector) *embedding.Service {
	opts := []embedding.Option{embedding.WithLogger(logger)}
	if collector != nil {
		opts = append(opts, embedding.WithRecorder(collector))
	}
	return embedding.NewService(tok, tracker, opts...)
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
