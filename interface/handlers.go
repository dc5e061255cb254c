package kiteriface

// Handlers receives errors that end a single shard's poller. The other pollers keep running.
type Handlers interface {
	Err(err error)
}

// HandlerFunc adapts a function to Handlers.
type HandlerFunc func(err error)

func (f HandlerFunc) Err(err error) {
	f(err)
}
