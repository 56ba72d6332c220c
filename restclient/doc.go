// Package restclient provides a REST controller that issues verb calls
// (GET/POST/PUT/PATCH/DELETE) against a fixed base URL, validates the
// response status, and hands the body to a pluggable deserializer.
//
// Responses come back as dynamic JSON values (dynjson.Value), typed
// structs, raw bytes, images, or nothing, depending on the deserializer.
// Failures are classified: transport, timeout, bad response, unexpected
// status, malformed response. Status-level failures carry the response
// headers and raw body so callers can inspect a structured error payload.
//
// # Basic Usage
//
//	c, err := restclient.New("https://api.example.com",
//	    restclient.WithHeaderSource(restclient.BearerToken("my-token")),
//	)
//	if err != nil {
//	    return err
//	}
//
//	res, err := c.Get(ctx, "users/123", restclient.WithExpectedStatus(200))
//	if err != nil {
//	    return err
//	}
//	name, _ := res.Data.Field("profile").Field("name").Str()
//
// # Typed Responses
//
//	type User struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	}
//
//	res, err := restclient.Get(ctx, c, restclient.Typed[User](), "users/123")
//
// # Self-Signed Hosts
//
// Internal endpoints serving self-signed certificates can be trusted for
// the controller's own host only:
//
//	c, err := restclient.New("https://build-box.internal:8443",
//	    restclient.WithSelfSignedSameHost(),
//	)
//
// Certificates presented for any other host still go through standard
// chain verification, and redirects off the base host are refused.
package restclient
