// Package profile serves the single profile resource: one fixed text reply
// per verb on /{username}.
package profile

import (
	"context"

	"github.com/bjaus/views"
)

// Name is the application name of the profile server.
const Name = "CBVs"

// Pattern is the resource path template. The username is any non-empty
// path segment.
const Pattern = "/{username}"

// View handles GET, PUT, PATCH and DELETE on a profile. The request body,
// headers and the username itself do not affect the reply.
type View struct{}

// Get handles GET.
func (View) Get(_ context.Context, _ *views.Request) (*views.Response, error) {
	return views.Text("I am get method"), nil
}

// Put handles PUT.
func (View) Put(_ context.Context, _ *views.Request) (*views.Response, error) {
	return views.Text("I am put method"), nil
}

// Patch handles PATCH.
func (View) Patch(_ context.Context, _ *views.Request) (*views.Response, error) {
	return views.Text("I am patch method"), nil
}

// Delete handles DELETE.
func (View) Delete(_ context.Context, _ *views.Request) (*views.Response, error) {
	return views.Text("I am delete method"), nil
}

// Register attaches the profile view to reg.
func Register(reg views.Registrar) {
	views.Attach(reg, Pattern, View{}, views.WithSummary("Single profile"))
}
