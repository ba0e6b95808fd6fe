package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"todo-service/internal/api/http/middleware"
	"todo-service/internal/config"
	"todo-service/internal/validator"
	todov1 "todo-service/pkg/api/todo/v1"

	"github.com/charmbracelet/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/tmc/grpc-websocket-proxy/wsproxy"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// apiPrefixes - маршруты доступны и с корня, и под /api/v1
var apiPrefixes = []string{"", "/api/v1"}

// Dial создает клиентское соединение Gateway с gRPC сервером
func Dial(grpcAddr string) (*grpc.ClientConn, error) {
	// Адрес слушающего сокета (":50051", "0.0.0.0:50051") переводим в localhost
	if host, port, err := net.SplitHostPort(grpcAddr); err == nil {
		switch host {
		case "", "0.0.0.0", "::":
			grpcAddr = net.JoinHostPort("localhost", port)
		}
	}

	conn, err := grpc.NewClient(
		grpcAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc.NewClient %s: %w", grpcAddr, err)
	}
	return conn, nil
}

// NewHandler собирает HTTP обработчик Gateway.
// Маршруты TodoService регистрируются на runtime.ServeMux и проксируются в gRPC клиента.
// Если mux != nil, остальные пути (например /swagger.json) обслуживает он.
func NewHandler(client todov1.TodoServiceClient, v *validator.Validator, cfg *config.ConfigGateway, mux *http.ServeMux) (http.Handler, error) {
	if mux == nil {
		mux = http.NewServeMux()
	}

	gwMux := runtime.NewServeMux()
	routes := newRoutes(client, v, gwMux)
	if err := routes.register(apiPrefixes...); err != nil {
		return nil, fmt.Errorf("failed to register gateway routes: %w", err)
	}

	// Все пути, кроме явно зарегистрированных на mux, уходят в Gateway
	mux.Handle("/", gwMux)

	// Middleware в порядке от внутреннего к внешнему:
	// RateLimit → Logging → CORS → WebSocket Proxy
	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler = middleware.Logging(handler)
	handler = setupCORS(cfg).Handler(handler)
	// WebSocket proxy должен быть самым внешним, чтобы обработать upgrade
	handler = wsproxy.WebsocketProxy(handler)

	return handler, nil
}

// Setup подключается к gRPC серверу и возвращает готовый HTTP обработчик.
// Соединение закрывается при отмене ctx.
func Setup(ctx context.Context, grpcAddr string, v *validator.Validator, cfg *config.ConfigGateway, mux *http.ServeMux) (http.Handler, error) {
	conn, err := Dial(grpcAddr)
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := conn.Close(); err != nil {
			log.Warn("failed to close gateway connection", "err", err)
		}
	}()

	handler, err := NewHandler(todov1.NewTodoServiceClient(conn), v, cfg, mux)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info("HTTP Gateway configured", "grpc", grpcAddr, "cors", cfg.CORSAllowedOrigins)
	return handler, nil
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Requested-With",
		},
		MaxAge: maxAge,
	})
}
