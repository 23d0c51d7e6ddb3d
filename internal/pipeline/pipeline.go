// Package pipeline runs registered validators in front of request handlers.
//
// Validators are registered per request type. Send (or a handler built with
// Wrap) runs every validator for the request's type concurrently, joins their
// results and only calls the handler when none of them reported a failure.
package pipeline

import (
	"context"
	"reflect"
	"sync"

	"roadIncidents/pkg/validator"
)

type Validator[Req any] interface {
	Validate(ctx context.Context, req Req) []FieldError
}

type ValidatorFunc[Req any] func(ctx context.Context, req Req) []FieldError

func (f ValidatorFunc[Req]) Validate(ctx context.Context, req Req) []FieldError {
	return f(ctx, req)
}

type HandlerFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Registry maps a request type to its ordered validators. It is populated
// during startup and only read afterwards.
type Registry struct {
	validators map[reflect.Type][]any
}

func NewRegistry() *Registry {
	return &Registry{validators: make(map[reflect.Type][]any)}
}

func typeKey[Req any]() reflect.Type {
	return reflect.TypeOf((*Req)(nil)).Elem()
}

func Register[Req any](r *Registry, vs ...Validator[Req]) {
	key := typeKey[Req]()
	for _, v := range vs {
		r.validators[key] = append(r.validators[key], v)
	}
}

func For[Req any](r *Registry) []Validator[Req] {
	if r == nil {
		return nil
	}
	raw := r.validators[typeKey[Req]()]
	out := make([]Validator[Req], 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(Validator[Req]))
	}
	return out
}

// Validate runs all validators against req and returns a *ValidationError
// holding every failure, in validator registration order.
func Validate[Req any](ctx context.Context, req Req, validators []Validator[Req]) error {
	if len(validators) == 0 {
		return nil
	}

	results := make([][]FieldError, len(validators))
	var wg sync.WaitGroup
	for i, v := range validators {
		i, v := i, v
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = v.Validate(ctx, req)
		}()
	}
	wg.Wait()

	var failures []FieldError
	for _, r := range results {
		failures = append(failures, r...)
	}
	if len(failures) > 0 {
		return &ValidationError{Failures: failures}
	}

	return ctx.Err()
}

func Send[Req, Resp any](ctx context.Context, r *Registry, req Req, next HandlerFunc[Req, Resp]) (Resp, error) {
	if err := Validate(ctx, req, For[Req](r)); err != nil {
		var zero Resp
		return zero, err
	}
	return next(ctx, req)
}

func Wrap[Req, Resp any](r *Registry, next HandlerFunc[Req, Resp]) HandlerFunc[Req, Resp] {
	return func(ctx context.Context, req Req) (Resp, error) {
		return Send(ctx, r, req, next)
	}
}

// StructRules validates the struct tags of Req.
func StructRules[Req any]() Validator[Req] {
	return ValidatorFunc[Req](func(_ context.Context, req Req) []FieldError {
		return toFieldErrors(validator.Violations(req))
	})
}

// FieldRules validates the struct tags of the named Go fields of Req only.
func FieldRules[Req any](fields ...string) Validator[Req] {
	return ValidatorFunc[Req](func(_ context.Context, req Req) []FieldError {
		return toFieldErrors(validator.PartialViolations(req, fields...))
	})
}

func toFieldErrors(violations []validator.Violation, err error) []FieldError {
	if err != nil {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(violations))
	for _, v := range violations {
		out = append(out, FieldError{Field: v.Field, Message: v.Message})
	}
	return out
}
