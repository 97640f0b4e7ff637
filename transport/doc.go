/*
Package transport serves requestmock responses through an http.RoundTripper.

Code built on *http.Client can be pointed at a Transport instead of the
network. Tests configure per-method and per-URL Callers, fall back to a
default Caller, and inspect the recorded Calls afterwards.

	tr := transport.New(transport.Config{})
	tr.On(http.MethodGet, "https://www.zohoapis.com/crm/v2/Leads").
		Return(requestmock.Mock(http.StatusUnauthorized, "").Caller())

	client := tr.Client()
	resp, err := client.Get("https://www.zohoapis.com/crm/v2/Leads")
*/
package transport
