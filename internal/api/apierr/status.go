// Package apierr сопоставляет доменные ошибки с gRPC статусами.
package apierr

import (
	"context"
	"errors"
	"fmt"

	"todo-service/internal/model"
	"todo-service/internal/repository/faulty"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// errorDomain - домен для errdetails.ErrorInfo
const errorDomain = "todo-service"

// Коды причин в ErrorInfo.Reason
const (
	ReasonValidation    = "VALIDATION_ERROR"
	ReasonNotFound      = "TODO_NOT_FOUND"
	ReasonInjectedFault = "INJECTED_FAULT"
	ReasonInternal      = "INTERNAL_ERROR"
)

// ToStatus конвертирует внутренние ошибки в gRPC статусы с детализацией
func ToStatus(err error) *status.Status {
	if err == nil {
		return nil
	}

	// Ошибка уже является статусом (например, от нижележащего gRPC вызова)
	if st, ok := status.FromError(err); ok {
		return st
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		st := status.New(codes.InvalidArgument, validationErr.Error())
		badRequest := &errdetails.BadRequest{}
		for _, f := range validationErr.Fields {
			badRequest.FieldViolations = append(badRequest.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       f.Field,
				Description: f.Message,
			})
		}
		return withDetails(st, badRequest, &errdetails.ErrorInfo{
			Reason: ReasonValidation,
			Domain: errorDomain,
		})
	}

	var notFoundErr *model.NotFoundError
	if errors.As(err, &notFoundErr) {
		st := status.New(codes.NotFound, "todo not found")
		return withDetails(st, &errdetails.ErrorInfo{
			Reason:   ReasonNotFound,
			Domain:   errorDomain,
			Metadata: map[string]string{"todo_id": notFoundErr.ID},
		})
	}

	if errors.Is(err, faulty.ErrInjected) {
		st := status.New(codes.Unavailable, err.Error())
		return withDetails(st, &errdetails.ErrorInfo{
			Reason: ReasonInjectedFault,
			Domain: errorDomain,
		})
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	}

	// Все остальные ошибки - Internal
	st := status.New(codes.Internal, "internal error")
	return withDetails(st, &errdetails.ErrorInfo{
		Reason:   ReasonInternal,
		Domain:   errorDomain,
		Metadata: map[string]string{"cause": fmt.Sprintf("%v", err)},
	})
}

// Error возвращает ошибку, готовую к отдаче из gRPC метода
func Error(err error) error {
	if err == nil {
		return nil
	}
	return ToStatus(err).Err()
}

func withDetails(st *status.Status, details ...protoadapt.MessageV1) *status.Status {
	detailed, err := st.WithDetails(details...)
	if err != nil {
		// Если не удалось добавить Details, возвращаем статус без деталей
		return st
	}
	return detailed
}
