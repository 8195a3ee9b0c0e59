package restmachinery

// OutboundRequest models a request to the GameRecs API.
type OutboundRequest struct {
	// Method is the HTTP method.
	Method string
	// Path is the request path, relative to the API address, without a leading
	// slash.
	Path string
	// QueryParams are added to the request's query string.
	QueryParams map[string]string
	// Headers are added to the request.
	Headers map[string]string
	// ReqBodyObj is marshaled to JSON and sent as the request body. A []byte is
	// sent as is.
	ReqBodyObj interface{}
	// SuccessCode is the status code that indicates success. Zero means 200.
	SuccessCode int
	// RespObj, if non-nil, receives the unmarshaled response body.
	RespObj interface{}
}
