package swagger

import (
	"embed"
	"net/http"

	"github.com/charmbracelet/log"
)

//go:embed specs/todo.swagger.json
var specs embed.FS

const specFile = "specs/todo.swagger.json"

// Spec возвращает встроенный OpenAPI (swagger 2.0) документ
func Spec() []byte {
	data, err := specs.ReadFile(specFile)
	if err != nil {
		// Файл встроен при сборке, отсутствовать не может
		panic("swagger: " + err.Error())
	}
	return data
}

// ServeSwagger регистрирует /swagger.json на mux
func ServeSwagger(mux *http.ServeMux) {
	spec := Spec()

	mux.HandleFunc("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(spec)
	})

	log.Info("Swagger JSON available at /swagger.json")
}
