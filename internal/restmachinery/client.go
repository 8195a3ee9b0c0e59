package restmachinery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gamerecs/gamerecs/sdk/errs"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// BaseClient provides the plumbing shared by all specialized API clients.
// Authentication is not its concern; HTTPClient is expected to carry a
// transport that attaches credentials.
type BaseClient struct {
	APIAddress string
	HTTPClient *http.Client
}

// ExecuteRequest submits the request and, when the request specifies a
// response object, unmarshals the response body into it.
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
) error {
	resp, err := b.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.RespObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// SubmitRequest submits the request and returns the raw response. Any status
// other than the request's success code is classified into one of the error
// types from the errs package and the response is closed.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req OutboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.ReqBodyObj != nil {
		switch rb := req.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.Method,
		b.URL(req.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.Method,
			req.Path,
		)
	}
	if len(req.QueryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	if reqBodyReader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json")
	requestID := uuid.NewV4().String()
	r.Header.Set("X-Request-ID", requestID)
	for k, v := range req.Headers {
		r.Header.Add(k, v)
	}

	glog.V(2).Infof("request %s: %s %s", requestID, req.Method, req.Path)

	resp, err := b.httpClient().Do(r)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), "request %s %s", req.Method, req.Path)
		}
		glog.V(1).Infof("request %s failed: %s", requestID, err)
		return nil, errs.NewErrNetwork(err)
	}

	glog.V(2).Infof("request %s: received %d", requestID, resp.StatusCode)

	if (req.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(req.SuccessCode != 0 && resp.StatusCode != req.SuccessCode) {
		defer resp.Body.Close()
		// The status code and, when present, the body tell us what went wrong
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		return nil, errs.Classify(resp.StatusCode, bodyBytes, req.Path)
	}
	return resp, nil
}

// URL returns the absolute URL for a path relative to the API address.
func (b *BaseClient) URL(path string) string {
	return fmt.Sprintf(
		"%s/%s",
		strings.TrimSuffix(b.APIAddress, "/"),
		strings.TrimPrefix(path, "/"),
	)
}

func (b *BaseClient) httpClient() *http.Client {
	if b.HTTPClient == nil {
		return http.DefaultClient
	}
	return b.HTTPClient
}
