package todov1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTodoRequest_UnmarshalJSON(t *testing.T) {
	body := `{"title":"a","description":null,"completed":"yes"}`

	var req CreateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Title)
	assert.Equal(t, "a", *req.Title)
	assert.Nil(t, req.Description)
	assert.Nil(t, req.Completed, "wrong type stays unset")
	assert.JSONEq(t, body, string(req.RawJSON()))
}

func TestUpdateTodoRequest_UnmarshalJSON(t *testing.T) {
	var req UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"42","completed":false}`), &req))

	assert.Equal(t, "42", req.Id)
	require.NotNil(t, req.Completed)
	assert.False(t, *req.Completed)
	assert.Nil(t, req.Title)
	assert.NotNil(t, req.RawJSON())
}

func TestRequest_NotAnObject(t *testing.T) {
	var req UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &req))

	assert.Empty(t, req.Id)
	assert.Equal(t, `[1,2]`, string(req.RawJSON()))
}

func TestRequest_BuiltInCodeHasNoRaw(t *testing.T) {
	title := "a"
	req := &CreateTodoRequest{Title: &title}
	assert.Nil(t, req.RawJSON())

	data, err := Codec{}.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a"}`, string(data))
}
