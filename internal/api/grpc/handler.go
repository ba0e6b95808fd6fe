package grpc

import (
	"context"

	"todo-service/internal/api/apierr"
	"todo-service/internal/converter"
	"todo-service/internal/model"
	svc "todo-service/internal/service"
	"todo-service/internal/service/todos"
	todov1 "todo-service/pkg/api/todo/v1"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Handler реализует gRPC сервер для TodoService
type Handler struct {
	todov1.UnimplementedTodoServiceServer

	todoService svc.TodoService
	events      *todos.EventService

	// Контекст сервера: отменяется при shutdown, чтобы стримы завершились
	serverCtx context.Context
}

// NewHandler создает новый экземпляр gRPC хэндлера.
// events может быть nil, тогда WatchTodos недоступен.
func NewHandler(todoService svc.TodoService, events *todos.EventService, serverCtx context.Context) *Handler {
	if serverCtx == nil {
		serverCtx = context.Background()
	}
	return &Handler{
		todoService: todoService,
		events:      events,
		serverCtx:   serverCtx,
	}
}

// ListTodos возвращает задачи по фильтру и поиску вместе со статистикой
func (h *Handler) ListTodos(ctx context.Context, req *todov1.ListTodosRequest) (*todov1.ListTodosResponse, error) {
	filter, err := model.ParseStatusFilter(req.GetStatus())
	if err != nil {
		return nil, apierr.Error(err)
	}

	view, err := h.todoService.Query(ctx, filter, req.GetQuery())
	if err != nil {
		return nil, apierr.Error(err)
	}

	return &todov1.ListTodosResponse{
		Todos: converter.ModelsToAPI(view.Todos),
		Stats: converter.StatsToAPI(view.Stats),
	}, nil
}

// GetTodo возвращает задачу по её UUID
func (h *Handler) GetTodo(ctx context.Context, req *todov1.GetTodoRequest) (*todov1.GetTodoResponse, error) {
	todo, err := h.todoService.Get(ctx, req.GetId())
	if err != nil {
		return nil, apierr.Error(err)
	}

	return &todov1.GetTodoResponse{
		Todo: converter.ModelToAPI(todo),
	}, nil
}

// CreateTodo создает новую задачу
func (h *Handler) CreateTodo(ctx context.Context, req *todov1.CreateTodoRequest) (*todov1.CreateTodoResponse, error) {
	todo, err := h.todoService.Create(ctx, converter.CreateRequestToInput(req))
	if err != nil {
		return nil, apierr.Error(err)
	}

	return &todov1.CreateTodoResponse{
		Todo: converter.ModelToAPI(todo),
	}, nil
}

// UpdateTodo частично обновляет задачу
func (h *Handler) UpdateTodo(ctx context.Context, req *todov1.UpdateTodoRequest) (*todov1.UpdateTodoResponse, error) {
	todo, err := h.todoService.Update(ctx, req.GetId(), converter.UpdateRequestToPatch(req))
	if err != nil {
		return nil, apierr.Error(err)
	}

	return &todov1.UpdateTodoResponse{
		Todo: converter.ModelToAPI(todo),
	}, nil
}

// DeleteTodo удаляет задачу по UUID
func (h *Handler) DeleteTodo(ctx context.Context, req *todov1.DeleteTodoRequest) (*emptypb.Empty, error) {
	if err := h.todoService.Delete(ctx, req.GetId()); err != nil {
		return nil, apierr.Error(err)
	}

	return &emptypb.Empty{}, nil
}

// GetStats возвращает агрегаты по всем задачам
func (h *Handler) GetStats(ctx context.Context, _ *emptypb.Empty) (*todov1.Stats, error) {
	stats, err := h.todoService.Stats(ctx)
	if err != nil {
		return nil, apierr.Error(err)
	}

	return converter.StatsToAPI(stats), nil
}

// WatchTodos стримит события изменения задач, пока клиент или сервер не завершат стрим
func (h *Handler) WatchTodos(_ *emptypb.Empty, stream grpc.ServerStreamingServer[todov1.TodoEvent]) error {
	if h.events == nil {
		return status.Error(codes.Unimplemented, "event stream is disabled")
	}

	ch := h.events.Subscribe()
	defer h.events.Unsubscribe(ch)

	ctx := stream.Context()
	log.Debugf("WatchTodos: subscriber attached (total %d)", h.events.Subscribers())

	for {
		select {
		case <-ctx.Done():
			// Клиент отключился
			return nil
		case <-h.serverCtx.Done():
			// Сервер останавливается
			return status.Error(codes.Unavailable, "server is shutting down")
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(converter.EventToAPI(event)); err != nil {
				return err
			}
		}
	}
}
