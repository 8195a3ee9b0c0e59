package restmachinery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamerecs/gamerecs/sdk/errs"
	"github.com/stretchr/testify/require"
)

func TestExecuteRequest(t *testing.T) {
	type thing struct {
		Name string `json:"name"`
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/api/things", r.URL.Path)
				require.Equal(t, "bar", r.URL.Query().Get("foo"))
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NotEmpty(t, r.Header.Get("X-Request-ID"))
				reqThing := thing{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqThing))
				require.Equal(t, "widget", reqThing.Name)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, `{"name":"gadget"}`)
			},
		),
	)
	defer server.Close()
	client := &BaseClient{
		APIAddress: server.URL + "/",
		HTTPClient: server.Client(),
	}
	respThing := thing{}
	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "api/things",
			QueryParams: map[string]string{"foo": "bar"},
			ReqBodyObj:  thing{Name: "widget"},
			SuccessCode: http.StatusCreated,
			RespObj:     &respThing,
		},
	)
	require.NoError(t, err)
	require.Equal(t, "gadget", respThing.Name)
}

func TestExecuteRequestClassifiesErrors(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintln(w, `{"message":"Validation failed","errors":{"email":"Email is invalid"}}`)
			},
		),
	)
	defer server.Close()
	client := &BaseClient{APIAddress: server.URL}
	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "api/users/register",
			SuccessCode: http.StatusCreated,
		},
	)
	require.IsType(t, &errs.ErrValidation{}, err)
	require.Equal(t, "Email is invalid", err.Error())
}

func TestExecuteRequestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()
	client := &BaseClient{APIAddress: address}
	err := client.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "api/users/profile",
		},
	)
	require.IsType(t, &errs.ErrNetwork{}, err)
}

func TestURL(t *testing.T) {
	client := &BaseClient{APIAddress: "http://localhost:8080/"}
	require.Equal(
		t,
		"http://localhost:8080/api/auth/login",
		client.URL("/api/auth/login"),
	)
}
