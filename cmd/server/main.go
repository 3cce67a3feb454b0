package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"coinprices/internal/aggregate"
	"coinprices/internal/config"
	"coinprices/internal/httpx"
	"coinprices/internal/launcher"
	"coinprices/internal/logger"
	"coinprices/internal/provider"
	"coinprices/internal/provider/coinbase"
	"coinprices/internal/symbol"
)

type quoteRow struct {
	Symbol symbol.Symbol `json:"symbol"`
	Name   string        `json:"name"`
	Price  string        `json:"price"`
	URL    string        `json:"url"`
}

type quotesResponse struct {
	Quotes []quoteRow `json:"quotes"`
}

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	httpClient := httpx.New(time.Duration(cfg.Coinbase.RequestTimeoutSec) * time.Second)
	client := coinbase.NewClient(
		coinbase.WithHTTPClient(httpClient),
		coinbase.WithEndpoint(cfg.Coinbase.Endpoint),
		coinbase.WithLogger(log),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newHandler(client, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec+5) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newHandler(f provider.Fetcher, cfg config.Config, log *zap.Logger) http.Handler {
	timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/quotes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		writeQuotes(w, ctx, f, r.URL.Query().Get("q"), cfg.Coinbase.LinkBase, log)
	})
	return withJSONHeaders(withGzip(recoverPanic(mux, log)))
}

func writeQuotes(w http.ResponseWriter, ctx context.Context, f provider.Fetcher, query, linkBase string, log *zap.Logger) {
	quotes, err := aggregate.Collect(ctx, f, symbol.All(), log)
	if err != nil {
		log.Error("collecting quotes", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	aggregate.Sort(quotes)
	quotes = launcher.Filter(quotes, query)

	resp := quotesResponse{Quotes: make([]quoteRow, 0, len(quotes))}
	for _, q := range quotes {
		it := launcher.NewItem(q, linkBase)
		resp.Quotes = append(resp.Quotes, quoteRow{
			Symbol: q.Symbol,
			Name:   q.Symbol.Name(),
			Price:  q.Price,
			URL:    it.Arg,
		})
	}
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		log.Warn("writing response", zap.Error(err))
	}
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	}}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz := gzPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close()
			gz.Reset(io.Discard)
			gzPool.Put(gz)
		}()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("handler panic", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
