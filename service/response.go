// Package service implements the product catalog workflows.
package service

// Status is the outcome class of a Response.
type Status int

const (
	StatusOK Status = iota
	StatusBadRequest
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadRequest:
		return "bad request"
	case StatusInternalError:
		return "internal error"
	default:
		return "unknown"
	}
}

// Response is the transport-neutral result of a catalog operation. Body is
// only set for successful reads; Message only for failures.
type Response struct {
	Status  Status
	Body    interface{}
	Message string
}

// Ok is a success without a body.
func Ok() Response {
	return Response{Status: StatusOK}
}

// OkWith is a success carrying body.
func OkWith(body interface{}) Response {
	return Response{Status: StatusOK, Body: body}
}

// BadRequest is a failure the caller can fix by changing the input.
func BadRequest(message string) Response {
	return Response{Status: StatusBadRequest, Message: message}
}

// InternalError is a failure of the service or one of its collaborators.
func InternalError(message string) Response {
	return Response{Status: StatusInternalError, Message: message}
}

// IsOK reports whether the response is a success.
func (r Response) IsOK() bool { return r.Status == StatusOK }
