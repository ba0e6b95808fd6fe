// Package validator проверяет входные данные задач по JSON Schema
// и превращает их в типизированные model.CreateInput / model.UpdateInput.
package validator

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todo-service/internal/model"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	createSchemaFile = "schemas/create.json"
	updateSchemaFile = "schemas/update.json"

	// Базовый URL, под которым схемы регистрируются в компиляторе
	schemaBaseURL = "https://todo-service.local/"
)

// Validator хранит скомпилированные схемы create и update.
// Безопасен для конкурентного использования.
type Validator struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
}

// New компилирует встроенные схемы
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	for _, name := range []string{createSchemaFile, updateSchemaFile} {
		data, err := schemaFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	create, err := compiler.Compile(schemaBaseURL + createSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", createSchemaFile, err)
	}
	update, err := compiler.Compile(schemaBaseURL + updateSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", updateSchemaFile, err)
	}

	return &Validator{create: create, update: update}, nil
}

// MustNew как New, но паникует при ошибке (схемы встроены в бинарник)
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic("validator: " + err.Error())
	}
	return v
}

// rawInput - поля запроса. Указатели отличают отсутствующее поле от пустого.
// Неизвестные поля отбрасываются при декодировании.
type rawInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ParseCreate валидирует сырой JSON запроса на создание
func (v *Validator) ParseCreate(raw []byte) (model.CreateInput, error) {
	in, err := v.parse(v.create, []string{"title", "description"}, raw)
	if err != nil {
		return model.CreateInput{}, err
	}

	out := model.CreateInput{
		Title:       *in.Title,
		Description: *in.Description,
	}
	if in.Completed != nil {
		out.Completed = *in.Completed
	}
	return out, nil
}

// ParseUpdate валидирует сырой JSON запроса на обновление
func (v *Validator) ParseUpdate(raw []byte) (model.UpdateInput, error) {
	in, err := v.parse(v.update, nil, raw)
	if err != nil {
		return model.UpdateInput{}, err
	}

	return model.UpdateInput{
		Title:       model.FromPtr(in.Title),
		Description: model.FromPtr(in.Description),
		Completed:   model.FromPtr(in.Completed),
	}, nil
}

// CheckCreate применяет те же правила к уже типизированному вводу
func (v *Validator) CheckCreate(in model.CreateInput) error {
	completed := in.Completed
	return v.check(v.create, nil, rawInput{
		Title:       &in.Title,
		Description: &in.Description,
		Completed:   &completed,
	})
}

// CheckUpdate применяет те же правила к уже типизированному патчу
func (v *Validator) CheckUpdate(in model.UpdateInput) error {
	return v.check(v.update, nil, rawInput{
		Title:       in.Title.Ptr(),
		Description: in.Description.Ptr(),
		Completed:   in.Completed.Ptr(),
	})
}

func (v *Validator) check(schema *jsonschema.Schema, required []string, in rawInput) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	_, err = v.parse(schema, required, data)
	return err
}

func (v *Validator) parse(schema *jsonschema.Schema, required []string, raw []byte) (rawInput, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return rawInput{}, model.NewValidationError(model.FieldError{
			Message: "malformed JSON body: " + err.Error(),
		})
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return rawInput{}, fmt.Errorf("schema.Validate: %w", err)
		}
		return rawInput{}, toValidationError(ve, doc, required)
	}

	var in rawInput
	if err := json.Unmarshal(raw, &in); err != nil {
		// Схема уже проверила типы, сюда попадаем только при расхождении схемы и rawInput
		return rawInput{}, model.NewValidationError(model.FieldError{Message: err.Error()})
	}
	return in, nil
}

// toValidationError раскладывает дерево ошибок jsonschema в плоский список полей
func toValidationError(ve *jsonschema.ValidationError, doc interface{}, required []string) *model.ValidationError {
	out := &model.ValidationError{}
	collect(out, ve, doc, required)
	if len(out.Fields) == 0 {
		out.Fields = append(out.Fields, model.FieldError{Message: ve.Message})
	}
	return out
}

func collect(out *model.ValidationError, ve *jsonschema.ValidationError, doc interface{}, required []string) {
	if ve == nil {
		return
	}
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collect(out, cause, doc, required)
		}
		return
	}

	switch {
	case strings.HasSuffix(ve.KeywordLocation, "/required"):
		obj, _ := doc.(map[string]interface{})
		for _, name := range required {
			if _, ok := obj[name]; !ok {
				out.Fields = append(out.Fields, model.FieldError{Field: name, Message: "is required"})
			}
		}
	case strings.HasSuffix(ve.KeywordLocation, "/pattern"):
		out.Fields = append(out.Fields, model.FieldError{
			Field:   pointerToField(ve.InstanceLocation),
			Message: "must not be empty",
		})
	default:
		out.Fields = append(out.Fields, model.FieldError{
			Field:   pointerToField(ve.InstanceLocation),
			Message: ve.Message,
		})
	}
}

// pointerToField превращает JSON pointer ("/title") в имя поля ("title")
func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
