package router

import "context"

// TokenReader reports whether a key is present in the client's store.
// A present key with an empty value still counts as present.
type TokenReader interface {
	Exists(ctx context.Context, key string) bool
}

// Decision is the guard's verdict. An empty Redirect allows the navigation.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard runs before every navigation. Only presence of the token is checked.
func Guard(ctx context.Context, to Route, tokens TokenReader) Decision {
	if to.RequiresToken && (tokens == nil || !tokens.Exists(ctx, TokenKey)) {
		return Decision{Redirect: LoginPath}
	}
	return Decision{}
}
