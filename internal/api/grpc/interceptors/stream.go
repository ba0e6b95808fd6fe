package interceptors

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
)

// wrappedServerStream оборачивает grpc.ServerStream для логирования каждого сообщения
type wrappedServerStream struct {
	grpc.ServerStream
	method string
}

// RecvMsg логирует входящие сообщения
func (w *wrappedServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	switch {
	case err == nil:
		log.Debugf("stream %s: received %T", w.method, m)
	case errors.Is(err, io.EOF):
		log.Debugf("stream %s: client closed send side", w.method)
	default:
		log.Warnf("stream %s: RecvMsg error: %v", w.method, err)
	}
	return err
}

// SendMsg логирует исходящие сообщения
func (w *wrappedServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err != nil {
		log.Warnf("stream %s: SendMsg error: %v", w.method, err)
	} else {
		log.Debugf("stream %s: sent %T", w.method, m)
	}
	return err
}

// StreamInterceptor логирует установку стрима, его сообщения и завершение
func StreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	log.Info("stream opened", "method", info.FullMethod)

	wrapped := &wrappedServerStream{
		ServerStream: ss,
		method:       info.FullMethod,
	}

	err := handler(srv, wrapped)
	if err != nil {
		log.Warn("stream failed", "method", info.FullMethod, "err", err)
	} else {
		log.Info("stream closed", "method", info.FullMethod)
	}

	return err
}
