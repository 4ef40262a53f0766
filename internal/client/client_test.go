package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s *staticTokenSource) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func TestNew(t *testing.T) {
	c, err := New("http://localhost:5000/api/", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:5000/api", c.baseURL)

	_, err = New("", nil, nil)
	assert.ErrorIs(t, err, ErrBaseURLEmpty)
}

func TestClient_RequestShape(t *testing.T) {
	var gotReq *http.Request
	var gotBody []byte

	r := mux.NewRouter()
	r.HandleFunc("/Blog", func(w http.ResponseWriter, req *http.Request) {
		gotReq = req
		gotBody, _ = io.ReadAll(req.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b1"}`))
	}).Methods("POST")
	server := httptest.NewServer(r)
	defer server.Close()

	c, err := New(server.URL, server.Client(), &staticTokenSource{token: "test-token-123"})
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "/Blog", map[string]string{"title": "T"}, nil)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":"b1"}`, string(resp.Body))

	require.NotNil(t, gotReq)
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	assert.Equal(t, "Bearer test-token-123", gotReq.Header.Get("Authorization"))
	assert.JSONEq(t, `{"title":"T"}`, string(gotBody))
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, err := New(server.URL, server.Client(), &staticTokenSource{})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/Blog", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_QueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, err := New(server.URL, server.Client(), nil)
	require.NoError(t, err)

	q := url.Values{}
	q.Set("page", "2")
	q.Set("limit", "5")
	q.Set("search", "golang")
	_, err = c.Get(context.Background(), "/Blog", &RequestOptions{Query: q})
	require.NoError(t, err)

	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
	assert.Equal(t, "golang", gotQuery.Get("search"))
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"blog not found"}`))
	}))
	defer server.Close()

	c, err := New(server.URL, server.Client(), nil)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/Blog/nope", nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(statusErr.Body, &body))
	assert.Equal(t, "blog not found", body["message"])
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	serverURL := server.URL
	server.Close() // nobody listening anymore

	c, err := New(serverURL, nil, nil)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/Blog", nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	// a pure network failure must not look like an http status error
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_DeleteAndPut(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/Blog/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}).Methods("DELETE")
	r.HandleFunc("/Blog/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"id":"b1","title":"updated"}`))
	}).Methods("PUT")
	server := httptest.NewServer(r)
	defer server.Close()

	c, err := New(server.URL, server.Client(), nil)
	require.NoError(t, err)

	resp, err := c.Delete(context.Background(), "/Blog/b1", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = c.Put(context.Background(), "/Blog/b1", map[string]string{"title": "updated"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b1","title":"updated"}`, string(resp.Body))
}
