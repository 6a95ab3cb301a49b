package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/restokasir/kasir-web/internal/cart"
	"github.com/restokasir/kasir-web/internal/checkout"
	"github.com/restokasir/kasir-web/internal/gateway"
	"github.com/restokasir/kasir-web/internal/telemetry"
	"github.com/restokasir/kasir-web/internal/upstream"
	"github.com/restokasir/kasir-web/internal/web"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "kasir-web", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("kasir-web", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	commerceAPIURL := os.Getenv("COMMERCE_API_URL")
	if commerceAPIURL == "" {
		logger.Error("COMMERCE_API_URL is required")
		os.Exit(1)
	}

	cartTTL := 2 * time.Hour
	if raw := os.Getenv("CART_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid CART_TTL", "error", err, "value", raw)
			os.Exit(1)
		}
		cartTTL = parsed
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	carts := cart.NewStore(cartTTL, logger)
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go carts.Janitor(janitorCtx, 10*time.Minute)

	api := upstream.NewClient(commerceAPIURL, httpClient)
	checkoutSvc := checkout.NewService(carts, api, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	webHandler := web.NewHandler(carts, api, checkoutSvc, renderer, logger)
	proxyHandler := gateway.NewHandler(gateway.NewOriginProxy(commerceAPIURL, httpClient), logger)

	mux := http.NewServeMux()
	webHandler.Register(mux, telemetry.WithHTTPRoute)

	mux.HandleFunc("GET /api/menu", telemetry.WithHTTPRoute(proxyHandler.HandleCatalog))
	mux.HandleFunc("GET /api/menu/{id}", telemetry.WithHTTPRoute(proxyHandler.HandleCatalog))
	mux.HandleFunc("GET /api/kategori", telemetry.WithHTTPRoute(proxyHandler.HandleCatalog))
	mux.HandleFunc("GET /api/metode-pembayaran", telemetry.WithHTTPRoute(proxyHandler.HandleCatalog))
	mux.HandleFunc("GET /api/orders", telemetry.WithHTTPRoute(proxyHandler.HandleOrders))
	mux.HandleFunc("POST /api/orders", telemetry.WithHTTPRoute(proxyHandler.HandleOrders))
	mux.HandleFunc("GET /api/orders/{id}", telemetry.WithHTTPRoute(proxyHandler.HandleOrders))
	mux.HandleFunc("POST /api/konfirmasi-pembayaran/{id}", telemetry.WithHTTPRoute(proxyHandler.HandleOrders))

	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "kasir-web",
			otelhttp.WithSpanNameFormatter(telemetry.SpanNameFormatter),
		),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting kasir web client", "port", port, "commerce_api", commerceAPIURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	stopJanitor()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
