package todov1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	TodoService_ListTodos_FullMethodName  = "/todo.v1.TodoService/ListTodos"
	TodoService_GetTodo_FullMethodName    = "/todo.v1.TodoService/GetTodo"
	TodoService_CreateTodo_FullMethodName = "/todo.v1.TodoService/CreateTodo"
	TodoService_UpdateTodo_FullMethodName = "/todo.v1.TodoService/UpdateTodo"
	TodoService_DeleteTodo_FullMethodName = "/todo.v1.TodoService/DeleteTodo"
	TodoService_GetStats_FullMethodName   = "/todo.v1.TodoService/GetStats"
	TodoService_WatchTodos_FullMethodName = "/todo.v1.TodoService/WatchTodos"
)

// TodoServiceClient - клиент todo.v1.TodoService
type TodoServiceClient interface {
	ListTodos(ctx context.Context, in *ListTodosRequest, opts ...grpc.CallOption) (*ListTodosResponse, error)
	GetTodo(ctx context.Context, in *GetTodoRequest, opts ...grpc.CallOption) (*GetTodoResponse, error)
	CreateTodo(ctx context.Context, in *CreateTodoRequest, opts ...grpc.CallOption) (*CreateTodoResponse, error)
	UpdateTodo(ctx context.Context, in *UpdateTodoRequest, opts ...grpc.CallOption) (*UpdateTodoResponse, error)
	DeleteTodo(ctx context.Context, in *DeleteTodoRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Stats, error)
	WatchTodos(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TodoEvent], error)
}

type todoServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTodoServiceClient создает клиента. Все вызовы идут с JSON кодеком.
func NewTodoServiceClient(cc grpc.ClientConnInterface) TodoServiceClient {
	return &todoServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *todoServiceClient) ListTodos(ctx context.Context, in *ListTodosRequest, opts ...grpc.CallOption) (*ListTodosResponse, error) {
	out := new(ListTodosResponse)
	if err := c.cc.Invoke(ctx, TodoService_ListTodos_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) GetTodo(ctx context.Context, in *GetTodoRequest, opts ...grpc.CallOption) (*GetTodoResponse, error) {
	out := new(GetTodoResponse)
	if err := c.cc.Invoke(ctx, TodoService_GetTodo_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) CreateTodo(ctx context.Context, in *CreateTodoRequest, opts ...grpc.CallOption) (*CreateTodoResponse, error) {
	out := new(CreateTodoResponse)
	if err := c.cc.Invoke(ctx, TodoService_CreateTodo_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) UpdateTodo(ctx context.Context, in *UpdateTodoRequest, opts ...grpc.CallOption) (*UpdateTodoResponse, error) {
	out := new(UpdateTodoResponse)
	if err := c.cc.Invoke(ctx, TodoService_UpdateTodo_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) DeleteTodo(ctx context.Context, in *DeleteTodoRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TodoService_DeleteTodo_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Stats, error) {
	out := new(Stats)
	if err := c.cc.Invoke(ctx, TodoService_GetStats_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *todoServiceClient) WatchTodos(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TodoEvent], error) {
	stream, err := c.cc.NewStream(ctx, &TodoService_ServiceDesc.Streams[0], TodoService_WatchTodos_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, TodoEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// TodoServiceServer - серверная часть todo.v1.TodoService
type TodoServiceServer interface {
	ListTodos(context.Context, *ListTodosRequest) (*ListTodosResponse, error)
	GetTodo(context.Context, *GetTodoRequest) (*GetTodoResponse, error)
	CreateTodo(context.Context, *CreateTodoRequest) (*CreateTodoResponse, error)
	UpdateTodo(context.Context, *UpdateTodoRequest) (*UpdateTodoResponse, error)
	DeleteTodo(context.Context, *DeleteTodoRequest) (*emptypb.Empty, error)
	GetStats(context.Context, *emptypb.Empty) (*Stats, error)
	WatchTodos(*emptypb.Empty, grpc.ServerStreamingServer[TodoEvent]) error
	mustEmbedUnimplementedTodoServiceServer()
}

// UnimplementedTodoServiceServer нужно встраивать в реализации сервера
type UnimplementedTodoServiceServer struct{}

func (UnimplementedTodoServiceServer) ListTodos(context.Context, *ListTodosRequest) (*ListTodosResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTodos not implemented")
}
func (UnimplementedTodoServiceServer) GetTodo(context.Context, *GetTodoRequest) (*GetTodoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTodo not implemented")
}
func (UnimplementedTodoServiceServer) CreateTodo(context.Context, *CreateTodoRequest) (*CreateTodoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTodo not implemented")
}
func (UnimplementedTodoServiceServer) UpdateTodo(context.Context, *UpdateTodoRequest) (*UpdateTodoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTodo not implemented")
}
func (UnimplementedTodoServiceServer) DeleteTodo(context.Context, *DeleteTodoRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteTodo not implemented")
}
func (UnimplementedTodoServiceServer) GetStats(context.Context, *emptypb.Empty) (*Stats, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedTodoServiceServer) WatchTodos(*emptypb.Empty, grpc.ServerStreamingServer[TodoEvent]) error {
	return status.Error(codes.Unimplemented, "method WatchTodos not implemented")
}
func (UnimplementedTodoServiceServer) mustEmbedUnimplementedTodoServiceServer() {}

// RegisterTodoServiceServer регистрирует реализацию на gRPC сервере
func RegisterTodoServiceServer(s grpc.ServiceRegistrar, srv TodoServiceServer) {
	s.RegisterService(&TodoService_ServiceDesc, srv)
}

func unaryHandler[Req any](
	fullMethod string,
	call func(srv TodoServiceServer, ctx context.Context, req *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TodoServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TodoServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _TodoService_WatchTodos_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TodoServiceServer).WatchTodos(m, &grpc.GenericServerStream[emptypb.Empty, TodoEvent]{ServerStream: stream})
}

// TodoService_ServiceDesc - описание сервиса для grpc.ServiceRegistrar
var TodoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "todo.v1.TodoService",
	HandlerType: (*TodoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListTodos",
			Handler: unaryHandler(TodoService_ListTodos_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *ListTodosRequest) (any, error) {
				return srv.ListTodos(ctx, req)
			}),
		},
		{
			MethodName: "GetTodo",
			Handler: unaryHandler(TodoService_GetTodo_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *GetTodoRequest) (any, error) {
				return srv.GetTodo(ctx, req)
			}),
		},
		{
			MethodName: "CreateTodo",
			Handler: unaryHandler(TodoService_CreateTodo_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *CreateTodoRequest) (any, error) {
				return srv.CreateTodo(ctx, req)
			}),
		},
		{
			MethodName: "UpdateTodo",
			Handler: unaryHandler(TodoService_UpdateTodo_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *UpdateTodoRequest) (any, error) {
				return srv.UpdateTodo(ctx, req)
			}),
		},
		{
			MethodName: "DeleteTodo",
			Handler: unaryHandler(TodoService_DeleteTodo_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *DeleteTodoRequest) (any, error) {
				return srv.DeleteTodo(ctx, req)
			}),
		},
		{
			MethodName: "GetStats",
			Handler: unaryHandler(TodoService_GetStats_FullMethodName, func(srv TodoServiceServer, ctx context.Context, req *emptypb.Empty) (any, error) {
				return srv.GetStats(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchTodos",
			Handler:       _TodoService_WatchTodos_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "todo/v1",
}
