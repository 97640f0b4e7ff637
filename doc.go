/*
Package requestmock builds canned HTTP responses for connector unit tests.

A Factory carries default settings. Each call to Respond, RespondString,
RespondJSON or Default returns a Stub: a recording, zero-argument callable
that hands back a newly allocated Response with exactly the status code and
body it was built with. Nothing is validated, so tests can simulate malformed
servers as easily as healthy ones.

	f := requestmock.New(requestmock.Config{})
	notFound := f.RespondString(http.StatusNotFound, "not found")

	resp := notFound.Call()
	// resp.StatusCode == 404, resp.Text() == "not found"

	ok := f.Default()
	// ok.Call().StatusCode == 200, body empty

Inject the Caller (stub.Caller()) directly, or go through the transport
package for code built on *http.Client, or the hostmock package for code that
talks to a Tarmac host over waPC.
*/
package requestmock
