package interceptors

import (
	"context"
	"encoding/json"

	"todo-service/internal/api/apierr"
	"todo-service/internal/validator"
	todov1 "todo-service/pkg/api/todo/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// rawRequest - запрос, сохранивший JSON тело, из которого он декодирован
type rawRequest interface {
	RawJSON() []byte
}

// ValidateUnaryInterceptor валидирует входящие запросы на создание и обновление
// по тем же JSON схемам, что и HTTP Gateway. Проверяется исходное тело запроса:
// null и поля неверного типа отклоняются так же, как в HTTP.
// Запрос, собранный без декодирования, сериализуется заново (nil поля пропадают).
// Если валидация не пройдена, возвращается ошибка с кодом InvalidArgument.
func ValidateUnaryInterceptor(v *validator.Validator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var err error
		switch r := req.(type) {
		case *todov1.CreateTodoRequest:
			err = validateJSON(r, func(raw []byte) error {
				_, err := v.ParseCreate(raw)
				return err
			})
		case *todov1.UpdateTodoRequest:
			err = validateJSON(r, func(raw []byte) error {
				_, err := v.ParseUpdate(raw)
				return err
			})
		}
		if err != nil {
			return nil, apierr.Error(err)
		}

		return handler(ctx, req)
	}
}

func validateJSON(req rawRequest, parse func(raw []byte) error) error {
	raw := req.RawJSON()
	if raw == nil {
		var err error
		if raw, err = json.Marshal(req); err != nil {
			return status.Errorf(codes.InvalidArgument, "validation failed: %v", err)
		}
	}
	return parse(raw)
}
