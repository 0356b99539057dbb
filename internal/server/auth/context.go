package auth

import "context"

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying the authenticated email.
func WithSubject(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, subjectKey{}, email)
}

// SubjectFromContext returns the email stored by WithSubject.
func SubjectFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(subjectKey{}).(string)
	return email, ok && email != ""
}
