package appMiddleware

import (
	"context"
	"net/http"
)

// Guard inspects a request and either returns the context the next guard
// should see or an error that stops the chain.
type Guard func(r *http.Request) (context.Context, error)

// RejectFunc writes the response for a request stopped by a guard.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Pipeline runs guards in order in front of a handler. The first guard that
// fails short-circuits: later guards and the handler never run.
type Pipeline struct {
	guards []Guard
	reject RejectFunc
}

func NewPipeline(reject RejectFunc, guards ...Guard) *Pipeline {
	return &Pipeline{guards: guards, reject: reject}
}

// Then returns a copy of the pipeline with more guards appended.
func (p *Pipeline) Then(guards ...Guard) *Pipeline {
	all := make([]Guard, 0, len(p.guards)+len(guards))
	all = append(all, p.guards...)
	all = append(all, guards...)
	return &Pipeline{guards: all, reject: p.reject}
}

// Len reports the number of guards.
func (p *Pipeline) Len() int {
	return len(p.guards)
}

// Handler adapts the pipeline to the chi middleware signature.
func (p *Pipeline) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, guard := range p.guards {
			ctx, err := guard(r)
			if err != nil {
				p.reject(w, r, err)
				return
			}
			if ctx != nil {
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}
