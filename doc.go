// Package views is a small HTTP framework built around per-verb resources.
// A resource is a path template with one handler per HTTP method; requests
// are dispatched purely by exact method name, so registering GET never
// implies HEAD and no OPTIONS responses are synthesised.
//
// The handler signature removes http.ResponseWriter and *http.Request:
//
//	type Handler func(ctx context.Context, req *Request) (*Response, error)
//
// Routes are registered with package-level functions:
//
//	r := views.New(views.WithName("CBVs"))
//	views.Get(r, "/{username}", getProfile)
//	views.Post(r, "/{$}", echo, views.WithSummary("Echo the raw request"))
//
// Class-based views group the handlers of one resource on a single type.
// Every method the type implements (Get, Post, Put, Patch, Delete) becomes a
// route on the same pattern:
//
//	type ProfileView struct{}
//
//	func (ProfileView) Get(ctx context.Context, req *views.Request) (*views.Response, error) {
//	    return views.Text("I am get method"), nil
//	}
//
//	views.Attach(r, "/{username}", ProfileView{})
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively.
package views
