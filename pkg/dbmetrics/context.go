package dbmetrics

import "context"

type ctxKey int

const executorKey ctxKey = iota

// WithExecutor returns a context carrying an active transaction executor.
// Repositories pick it up through GetExecutor so the same code path works
// inside and outside transactions.
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// GetExecutor returns the transaction executor from the context when one
// is present, otherwise the provided default.
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return exec
	}
	return def
}

// IsInTransaction reports whether the context carries an active transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}
