package interceptors

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggerUnaryInterceptor логирует начало запроса, итоговый статус и время выполнения
func LoggerUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	log.Debug("incoming request", "method", info.FullMethod)

	start := time.Now()
	resp, err := handler(ctx, req)
	duration := time.Since(start)

	if err != nil {
		st, _ := status.FromError(err)
		log.Warn("request failed",
			"method", info.FullMethod,
			"code", st.Code(),
			"message", st.Message(),
			"duration", duration)
	} else {
		log.Info("request completed", "method", info.FullMethod, "duration", duration)
	}

	return resp, err
}
