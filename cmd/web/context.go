package main

// contextKey keeps the token-presence flag from colliding with other context values.
type contextKey string

const hasTokenContextKey = contextKey("hasToken")
