// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the gym services: handlers decode
// and authorize requests, call a service, and map the result or error to a
// JSON response.
package api
