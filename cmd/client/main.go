package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"todo-service/internal/model"
	todov1 "todo-service/pkg/api/todo/v1"

	"github.com/charmbracelet/log"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	defaultAddress = "localhost:50051"
	requestTimeout = 10 * time.Second
)

const usage = `Usage: client <command> [args]

Commands:
  list [all|pending|completed] [query]
  get <id>
  create <title> <description> [completed]
  update <id> [-title T] [-description D] [-completed true|false]
  complete <id>
  delete <id>
  stats
  watch

Server address is read from SERVER_ADDRESS (default localhost:50051).`

func main() {
	// Получаем адрес сервера из переменной окружения или используем значение по умолчанию
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	conn, err := grpc.NewClient(
		address,
		grpc.WithTransportCredentials(insecure.NewCredentials()), // Для plaintext соединения
	)
	if err != nil {
		log.Fatal("failed to create client", "err", err)
	}
	defer conn.Close()

	client := todov1.NewTodoServiceClient(conn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, client, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client todov1.TodoServiceClient, cmd string, args []string, out io.Writer) error {
	// watch живет до Ctrl+C, остальным командам хватает таймаута
	if cmd != "watch" {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	switch cmd {
	case "list":
		req := &todov1.ListTodosRequest{}
		if len(args) > 0 {
			req.Status = args[0]
		}
		if len(args) > 1 {
			req.Query = args[1]
		}
		resp, err := client.ListTodos(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(out, resp)

	case "get":
		id, err := argID(args)
		if err != nil {
			return err
		}
		resp, err := client.GetTodo(ctx, &todov1.GetTodoRequest{Id: id})
		if err != nil {
			return err
		}
		return printJSON(out, resp.Todo)

	case "create":
		if len(args) < 2 {
			return errors.New("create requires <title> <description>")
		}
		in := model.CreateInput{Title: args[0], Description: args[1]}
		if len(args) > 2 {
			completed, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("completed: %w", err)
			}
			in.Completed = completed
		}
		resp, err := client.CreateTodo(ctx, &todov1.CreateTodoRequest{
			Title:       &in.Title,
			Description: &in.Description,
			Completed:   &in.Completed,
		})
		if err != nil {
			return err
		}
		return printJSON(out, resp.Todo)

	case "update":
		req, err := parseUpdate(args)
		if err != nil {
			return err
		}
		resp, err := client.UpdateTodo(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(out, resp.Todo)

	case "complete":
		id, err := argID(args)
		if err != nil {
			return err
		}
		completed := true
		resp, err := client.UpdateTodo(ctx, &todov1.UpdateTodoRequest{Id: id, Completed: &completed})
		if err != nil {
			return err
		}
		return printJSON(out, resp.Todo)

	case "delete":
		id, err := argID(args)
		if err != nil {
			return err
		}
		if _, err := client.DeleteTodo(ctx, &todov1.DeleteTodoRequest{Id: id}); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", id)
		return nil

	case "stats":
		stats, err := client.GetStats(ctx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		return printJSON(out, stats)

	case "watch":
		return watch(ctx, client, out)

	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

// parseUpdate разбирает флаги update. Переданы только явно указанные поля.
func parseUpdate(args []string) (*todov1.UpdateTodoRequest, error) {
	id, err := argID(args)
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	completed := fs.Bool("completed", false, "completion flag")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	req := &todov1.UpdateTodoRequest{Id: id}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "description":
			req.Description = description
		case "completed":
			req.Completed = completed
		}
	})
	return req, nil
}

// watch печатает события, пока сервер не закроет стрим или пользователь не нажмет Ctrl+C
func watch(ctx context.Context, client todov1.TodoServiceClient, out io.Writer) error {
	stream, err := client.WatchTodos(ctx, &emptypb.Empty{})
	if err != nil {
		return err
	}
	log.Info("watching todo events, press Ctrl+C to stop")

	for {
		event, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return nil
			}
			return err
		}
		fmt.Fprintf(out, "%s %s %s %q\n",
			event.OccurredAt.Format(time.RFC3339), event.Type, event.Todo.GetId(), event.Todo.Title)
	}
}

func argID(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errors.New("todo id is required")
	}
	return args[0], nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError выводит gRPC статус вместе с деталями (BadRequest, ErrorInfo)
func printError(err error) {
	st, ok := status.FromError(err)
	if !ok {
		log.Error(err.Error())
		return
	}

	log.Error(st.Message(), "code", st.Code().String())
	for _, detail := range st.Details() {
		switch t := detail.(type) {
		case *errdetails.BadRequest:
			for _, v := range t.GetFieldViolations() {
				log.Error("field violation", "field", v.GetField(), "description", v.GetDescription())
			}
		case *errdetails.ErrorInfo:
			log.Error("error info", "reason", t.GetReason(), "domain", t.GetDomain(), "metadata", t.GetMetadata())
		default:
			log.Warn("unknown error detail", "type", fmt.Sprintf("%T", t))
		}
	}
}
