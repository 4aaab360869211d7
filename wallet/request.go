package wallet

// Request is a wallet call in flight
type Request struct {
	method string
	done   chan struct{}
	err    error
}

func newRequest(method string) *Request {
	return &Request{method: method, done: make(chan struct{})}
}

// Method returns the API method the request calls
func (r *Request) Method() string {
	return r.method
}

// Done is closed once the delegate has been notified
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the request finished and returns its error
func (r *Request) Wait() error {
	<-r.done
	return r.err
}

// Err returns the request error, or nil while it is still running
func (r *Request) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

func (r *Request) finish(err error) {
	r.err = err
	close(r.done)
}
