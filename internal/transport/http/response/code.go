package response

import "net/http"

// Messages clients rely on verbatim.
const (
	MsgNoToken           = "Access denied. No token provided."
	MsgInvalidToken      = "Invalid token."
	MsgAccessDenied      = "Access denied."
	MsgInvalidID         = "Invalid Document Id"
	MsgBadCredentials    = "Incorrect Email or Password"
	MsgBlogNotFound      = "Blog doesn't exist"
	MsgInternal          = "Internal Server Error"
	MsgNotFound          = "Not Found"
	MsgTooManyRequests   = "Too Many Requests"
	MsgServerBusy        = "Server Busy"
	MsgBodyTooLarge      = "Request Body Too Large"
	MsgRequestTimeout    = "Request Timeout"
)

// CodeMsgMap holds the fallback message per status.
var CodeMsgMap = map[int]string{
	http.StatusOK:                    "OK",
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              MsgNotFound,
	http.StatusRequestEntityTooLarge: MsgBodyTooLarge,
	http.StatusTooManyRequests:       MsgTooManyRequests,
	http.StatusInternalServerError:   MsgInternal,
	http.StatusServiceUnavailable:    MsgServerBusy,
	http.StatusGatewayTimeout:        MsgRequestTimeout,
}

func messageFor(code int) string {
	if m, ok := CodeMsgMap[code]; ok {
		return m
	}
	return http.StatusText(code)
}
