/*
Package hostmock provides a pretend Tarmac host that answers HTTP client calls
with requestmock responses.

Code that reaches HTTP through the Tarmac waPC host takes a host call function
instead of an *http.Client. Mock.HostCall has that signature, so it can be
injected wherever the real wapc.HostCall would be, and the connector under
test sees whatever status and body the Caller was built with.

Quick start

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedNamespace:  hostmock.DefaultNamespace,
	  ExpectedCapability: hostmock.Capability,
	  ExpectedFunction:   hostmock.Function,
	  PayloadValidator: func(p []byte) error {
	    req, err := hostmock.DecodeRequest(p)
	    if err != nil {
	      return err
	    }
	    // assert req.GetMethod(), req.GetUrl() here
	    return nil
	  },
	  Caller: requestmock.Mock(http.StatusNotFound, "not found").Caller(),
	})

	resp, err := m.HostCall("tarmac", "httpclient", "call", payload)

Behavior

  - If Fail is true and Error is set, HostCall returns that error.
  - If Fail is true and Error is nil, HostCall returns ErrOperationFailed.
  - Otherwise, HostCall enforces ExpectedNamespace/Capability/Function when set
    and runs PayloadValidator when provided. If everything is in order, the
    Caller's response is encoded with a host status of 200; without a Caller
    HostCall returns nil.

The HTTP status code travels separately from the host status, so a 500 from
the Caller still reaches the guest as a successful host call carrying a 500.
*/
package hostmock
