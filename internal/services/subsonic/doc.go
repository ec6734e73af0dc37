// Package subsonic implements the salted-token Subsonic API surface of a
// Navidrome server: the paged album listing, the library rescan trigger, and
// the ping used by preflight checks.
//
// Credentials are derived once per process with NewCredentials and reused for
// every call; the salt is never regenerated per request. Responses are
// unwrapped from the "subsonic-response" envelope, and a non-ok status is
// returned as *APIError carrying the server's code and message.
package subsonic
