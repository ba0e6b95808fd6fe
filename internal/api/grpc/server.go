package grpc

import (
	"time"

	"todo-service/internal/api/grpc/interceptors"
	"todo-service/internal/validator"
	todov1 "todo-service/pkg/api/todo/v1"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

const maxConcurrentStreams = 256

// NewServer создает и настраивает gRPC сервер с интерцепторами и конфигурацией
func NewServer(handler todov1.TodoServiceServer, v *validator.Validator) *grpc.Server {
	grpcServer := grpc.NewServer(
		// Лимит на соединение. Gateway ходит через одно соединение, поэтому с запасом
		grpc.MaxConcurrentStreams(maxConcurrentStreams),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute,
			MaxConnectionAge:      1 * time.Hour,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  10 * time.Minute,
			Timeout:               20 * time.Second,
		}),
		// Порядок важен: Logger видит и запросы, отклоненные валидацией
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor,
			interceptors.ValidateUnaryInterceptor(v),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor,
		),
	)

	todov1.RegisterTodoServiceServer(grpcServer, handler)
	log.Info("registered TodoService")

	return grpcServer
}
