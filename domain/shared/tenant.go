package shared

import "context"

// LocalContextProvider supplies the tenant ("local", one restaurant
// instance) the current request is acting on behalf of. Every repository
// call is scoped by the local id it returns; no component reads or writes
// across locals.
type LocalContextProvider interface {
	CurrentLocalID(ctx context.Context) (string, error)
}

type localIDKey struct{}

// ContextWithLocalID attaches a local id to ctx, for middleware to call
// before handing the request to an application service.
func ContextWithLocalID(ctx context.Context, localID string) context.Context {
	return context.WithValue(ctx, localIDKey{}, localID)
}

// CtxLocalProvider reads the local id stashed by ContextWithLocalID.
type CtxLocalProvider struct{}

func (CtxLocalProvider) CurrentLocalID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(localIDKey{}).(string)
	if !ok || v == "" {
		return "", NewValidationError("request", "localId", "missing tenant context")
	}
	return v, nil
}

// LocalIDFromContext reads back the local id without erroring when it is
// absent, for call sites (logging, metrics) that want to annotate it when
// available rather than fail the operation when it isn't.
func LocalIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(localIDKey{}).(string)
	return v, ok && v != ""
}
