// Package api exposes the task assignment workflow over HTTP. Handlers decode
// and validate requests, call the service layer, and shape the camelCase JSON
// responses; MapErrorToStatusCode and GetSafeErrorMessage translate service
// errors so internal details never reach clients.
package api
