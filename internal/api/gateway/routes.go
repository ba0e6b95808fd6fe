package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"todo-service/internal/api/apierr"
	"todo-service/internal/converter"
	"todo-service/internal/model"
	"todo-service/internal/validator"
	todov1 "todo-service/pkg/api/todo/v1"

	"github.com/charmbracelet/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// maxBodyBytes - ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// routes переводит HTTP запросы в вызовы gRPC клиента
type routes struct {
	client    todov1.TodoServiceClient
	validator *validator.Validator
	mux       *runtime.ServeMux
}

func newRoutes(client todov1.TodoServiceClient, v *validator.Validator, mux *runtime.ServeMux) *routes {
	return &routes{
		client:    client,
		validator: v,
		mux:       mux,
	}
}

type route struct {
	method  string
	path    string
	handler runtime.HandlerFunc
}

// register регистрирует маршруты под каждым из префиксов.
// runtime.ServeMux проверяет позже зарегистрированные маршруты первыми,
// поэтому /todos/{id} идет раньше /todos/stats и /todos/events.
func (rt *routes) register(prefixes ...string) error {
	table := []route{
		{http.MethodGet, "/todos", rt.listTodos},
		{http.MethodPost, "/todos", rt.createTodo},
		{http.MethodGet, "/todos/{id}", rt.getTodo},
		{http.MethodPut, "/todos/{id}", rt.updateTodo},
		{http.MethodPatch, "/todos/{id}", rt.updateTodo},
		{http.MethodDelete, "/todos/{id}", rt.deleteTodo},
		{http.MethodGet, "/todos/stats", rt.getStats},
		{http.MethodGet, "/todos/events", rt.watchTodos},
	}

	for _, prefix := range prefixes {
		for _, r := range table {
			if err := rt.mux.HandlePath(r.method, prefix+r.path, r.handler); err != nil {
				return fmt.Errorf("%s %s: %w", r.method, prefix+r.path, err)
			}
		}
	}
	return nil
}

// GET /todos?status=pending&q=milk
func (rt *routes) listTodos(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	search := q.Get("q")
	if search == "" {
		search = q.Get("query")
	}

	resp, err := rt.client.ListTodos(r.Context(), &todov1.ListTodosRequest{
		Status: q.Get("status"),
		Query:  search,
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	todos := resp.Todos
	if todos == nil {
		todos = []*todov1.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

// GET /todos/{id}
func (rt *routes) getTodo(w http.ResponseWriter, r *http.Request, params map[string]string) {
	switch params["id"] {
	case "stats":
		rt.getStats(w, r, params)
		return
	case "events":
		rt.watchTodos(w, r, params)
		return
	}

	resp, err := rt.client.GetTodo(r.Context(), &todov1.GetTodoRequest{Id: params["id"]})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Todo)
}

// POST /todos
func (rt *routes) createTodo(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	body, err := readBody(w, r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	in, err := rt.validator.ParseCreate(body)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	resp, err := rt.client.CreateTodo(r.Context(), converter.InputToCreateRequest(in))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.Todo)
}

// PUT|PATCH /todos/{id}
func (rt *routes) updateTodo(w http.ResponseWriter, r *http.Request, params map[string]string) {
	body, err := readBody(w, r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	patch, err := rt.validator.ParseUpdate(body)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	resp, err := rt.client.UpdateTodo(r.Context(), converter.PatchToUpdateRequest(params["id"], patch))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Todo)
}

// DELETE /todos/{id}
func (rt *routes) deleteTodo(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if _, err := rt.client.DeleteTodo(r.Context(), &todov1.DeleteTodoRequest{Id: params["id"]}); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /todos/stats
func (rt *routes) getStats(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	stats, err := rt.client.GetStats(r.Context(), &emptypb.Empty{})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// streamError - последняя строка стрима при ошибке
type streamError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// GET /todos/events
// Отдает события построчно (newline-delimited JSON): {"result": {...}}.
// Через wsproxy тот же путь доступен по websocket, одна строка - одно сообщение.
func (rt *routes) watchTodos(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	stream, err := rt.client.WatchTodos(r.Context(), &emptypb.Empty{})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flush(w)

	enc := json.NewEncoder(w)
	for {
		event, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return
			}
			st := status.Convert(err)
			log.Warn("event stream ended", "code", st.Code(), "message", st.Message())
			_ = enc.Encode(map[string]streamError{
				"error": {Code: int32(st.Code()), Message: st.Message()},
			})
			flush(w)
			return
		}

		if err := enc.Encode(map[string]*todov1.TodoEvent{"result": event}); err != nil {
			// Клиент ушел
			return
		}
		flush(w)
	}
}

// writeError отдает ошибку в формате grpc-gateway: HTTP статус по gRPC коду, тело - google.rpc.Status
func (rt *routes) writeError(w http.ResponseWriter, r *http.Request, err error) {
	_, outbound := runtime.MarshalerForRequest(rt.mux, r)
	runtime.HTTPError(r.Context(), rt.mux, outbound, w, r, apierr.Error(err))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, model.NewValidationError(model.FieldError{Message: "cannot read request body: " + err.Error()})
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("failed to write response", "err", err)
	}
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
