// Package gamepanel provides a client for the GamePanel.io REST API.
//
// The client exposes the panel's user and server resources as typed method calls.
// Every call builds a fresh request descriptor, sends it through a pluggable
// Transport and decodes the JSON body into a generic map.
//
// # Architecture
//
//   - AccessToken: supplies the bearer token placed on every request
//   - RequestBuilder: turns a method, path and body into an immutable Request
//   - Transport: sends a Request and returns a buffered Response
//   - Client: one method per panel operation
//   - Decode: permissive JSON decoding of response bodies
//   - CommunicationError: the single error kind for transfer failures
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := gamepanel.NewClient(
//		"panel.example.com",
//		gamepanel.PersonalAccessToken("your-token"),
//		logger,
//		gamepanel.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	user, err := client.GetUser(ctx, "42")
//	if err != nil {
//		var commErr *gamepanel.CommunicationError
//		if errors.As(err, &commErr) {
//			// network, DNS, TLS or timeout failure
//		}
//		log.Fatal(err)
//	}
//	fmt.Println(user["username"])
//
// # Status codes
//
// HTTP error statuses are not errors. A 404 or 422 response is decoded and
// returned like any other body; callers inspect the returned fields. Only
// transfer failures reported by the Transport produce an error, and they are
// always returned as *CommunicationError.
package gamepanel
