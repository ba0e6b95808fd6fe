package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"todo-service/internal/api/gateway"
	grpcapi "todo-service/internal/api/grpc"
	"todo-service/internal/api/swagger"
	"todo-service/internal/config"
	"todo-service/internal/repository"
	"todo-service/internal/repository/faulty"
	"todo-service/internal/repository/memory"
	svc "todo-service/internal/service"
	"todo-service/internal/service/todos"
	"todo-service/internal/validator"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
)

// Server представляет сервер приложения с gRPC и HTTP Gateway
type Server struct {
	// HTTP компоненты
	Mux           *http.ServeMux
	HTTPAddr      string
	HTTPServer    *http.Server
	HTTPListener  net.Listener
	GatewayCtx    context.Context
	GatewayCancel context.CancelFunc

	// gRPC компоненты
	GRPCServer *grpc.Server
	GRPCAddr   string
	Listener   net.Listener

	// Контекст сервера: отменяется при shutdown для завершения стримов
	Ctx    context.Context
	Cancel context.CancelFunc

	// Доменные компоненты
	Repository  repository.TodoRepository
	TodoService svc.TodoService
	Events      *todos.EventService
	Validator   *validator.Validator

	Config *config.Config
}

// NewServer создает сервер и открывает listeners на портах из конфига
func NewServer(cfg *config.Config) (*Server, error) {
	cfg.ApplyDefaults()

	grpcAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortGRPC)
	httpAddr := "0.0.0.0:" + strconv.Itoa(cfg.Server.PortHTTP)
	return newServer(cfg, grpcAddr, httpAddr)
}

func newServer(cfg *config.Config, grpcAddr, httpAddr string) (*Server, error) {
	log.Info("config loaded", "grpc", grpcAddr, "http", httpAddr)

	listener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	gatewayCtx, gatewayCancel := context.WithCancel(context.Background())

	return &Server{
		Mux:           http.NewServeMux(),
		HTTPAddr:      httpListener.Addr().String(),
		HTTPListener:  httpListener,
		GatewayCtx:    gatewayCtx,
		GatewayCancel: gatewayCancel,
		GRPCAddr:      listener.Addr().String(),
		Listener:      listener,
		Ctx:           serverCtx,
		Cancel:        serverCancel,
		Config:        cfg,
	}, nil
}

// Initialize инициализирует компоненты (DI): Repository → Service → Handler → gRPC/HTTP
func (s *Server) Initialize() error {
	v, err := validator.New()
	if err != nil {
		return fmt.Errorf("validator.New: %w", err)
	}
	s.Validator = v

	s.Repository = memory.NewRepository()
	log.Info("initialized in-memory repository (map-based)")

	if s.Config.Faults.Enabled {
		faultCfg := s.Config.Faults.FaultConfig()
		s.Repository = faulty.NewRepository(s.Repository, faultCfg)
		log.Warn("fault injection enabled", "failure_rate", faultCfg.FailureRate)
	}

	s.Events = todos.NewEventService()
	s.TodoService = todos.NewTodoService(s.Repository, v, todos.WithEvents(s.Events))
	log.Info("initialized todo service")

	if s.Config.Seed.Enabled {
		// Сидируем в обход fault injection, иначе старт может случайно упасть
		importer, ok := memoryOf(s.Repository).(repository.Importer)
		if !ok {
			return fmt.Errorf("seed: repository %T does not support import", s.Repository)
		}
		seeded, err := todos.Seed(s.Ctx, importer, v, todos.SampleTodos(), time.Now())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("seeded sample todos", "count", len(seeded))
	}

	handler := grpcapi.NewHandler(s.TodoService, s.Events, s.Ctx)
	s.GRPCServer = grpcapi.NewServer(handler, v)

	if s.Config.Swagger.Enabled {
		swagger.ServeSwagger(s.Mux)
	}

	httpHandler, err := gateway.Setup(s.GatewayCtx, s.GRPCAddr, v, s.Config.Gateway, s.Mux)
	if err != nil {
		return fmt.Errorf("gateway.Setup: %w", err)
	}

	s.HTTPServer = &http.Server{
		Handler:           httpHandler,
		ReadTimeout:       seconds(s.Config.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(s.Config.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(s.Config.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(s.Config.Server.HTTPReadHeaderTimeout),
	}

	return nil
}

// Start запускает gRPC и HTTP серверы в горутинах.
// Возвращает канал ошибок для отслеживания ошибок серверов.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	go func() {
		log.Info("gRPC server listening", "addr", s.GRPCAddr)
		if err := s.GRPCServer.Serve(s.Listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		log.Info("HTTP Gateway listening", "addr", s.HTTPAddr)
		if err := s.HTTPServer.Serve(s.HTTPListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP Gateway error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	log.Info("starting graceful shutdown")

	// Отменяем контекст сервера до GracefulStop: WatchTodos слушает его и завершается
	s.Cancel()

	shutdownTimeout := seconds(s.Config.Server.GracefulShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if s.HTTPServer != nil {
		if err := s.HTTPServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}
	// Соединение Gateway с gRPC закрываем после остановки HTTP
	s.GatewayCancel()

	stopped := make(chan struct{})
	go func() {
		s.GRPCServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info("gRPC server stopped gracefully")
	case <-ctx.Done():
		log.Warn("graceful shutdown timeout, forcing stop")
		s.GRPCServer.Stop()
		errs = append(errs, ctx.Err())
	}

	return errors.Join(errs...)
}

// unwrapper - обертка над репозиторием (fault injection)
type unwrapper interface {
	Unwrap() repository.TodoRepository
}

// memoryOf снимает обертку fault injection для служебных операций
func memoryOf(r repository.TodoRepository) repository.TodoRepository {
	if u, ok := r.(unwrapper); ok {
		return u.Unwrap()
	}
	return r
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
