package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/peteraglen/api-go-client"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"b=2", "a=1", "q=x=y", "empty="})
	require.NoError(t, err)
	assert.Equal(t, client.Params{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}, {Key: "q", Value: "x=y"}, {Key: "empty", Value: ""}}, params)

	_, err = parseParams([]string{"novalue"})
	assert.ErrorContains(t, err, "expected key=value")

	_, err = parseParams([]string{"=1"})
	assert.Error(t, err)
}

func TestParseData(t *testing.T) {
	t.Parallel()

	body, err := parseData("")
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = parseData(`{"name": "web-1"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "web-1"}, body)

	_, err = parseData("{not json")
	assert.ErrorContains(t, err, "not valid JSON")

	file := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"size": 2}`), 0o600))

	body, err = parseData("@" + file)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"size": float64(2)}, body)

	_, err = parseData("@" + filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read body file")
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return stdout.String(), err
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items": [{"id": 1}, {"id": 2}]}`))
	}))
	defer server.Close()

	out, err := runCmd(t, "--base-url", server.URL, "--token", "flag-token", "get", "/droplets", "-p", "b=2", "-p", "a=1")
	require.NoError(t, err)

	assert.Equal(t, "/v2/droplets", gotPath)
	assert.Equal(t, "b=2&a=1", gotQuery)
	assert.Equal(t, "Bearer flag-token", gotAuth)

	var resource []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resource))
	assert.Len(t, resource, 2)
}

func TestPostCommand(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"id": 7}}`))
	}))
	defer server.Close()

	out, err := runCmd(t, "--base-url", server.URL, "--token", "t", "post", "/droplets", "-d", `{"name": "web-1"}`)
	require.NoError(t, err)

	assert.JSONEq(t, `{"data": {"name": "web-1"}}`, string(gotBody))
	assert.JSONEq(t, `{"id": 7}`, out)
}

func TestCommand_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "name taken"}`))
	}))
	defer server.Close()

	out, err := runCmd(t, "--base-url", server.URL, "--token", "t", "put", "/droplets/1", "-d", `{"name": "web-1"}`)

	require.Error(t, err)
	assert.True(t, client.IsKind(err, client.KindResource))
	assert.Empty(t, out)
}

func TestCommand_InvalidParam(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "--base-url", "http://example.com", "--token", "t", "delete", "/droplets/1", "-p", "oops")
	assert.ErrorContains(t, err, "invalid param")
}

// Uses t.Setenv, so it cannot run in parallel.
func TestCommand_MalformedEnvWithFlags(t *testing.T) {
	t.Setenv("API_VERBOSE", "notabool")

	_, err := runCmd(t, "--base-url", "http://example.com", "--token", "t", "get", "/droplets")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
