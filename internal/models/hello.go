// Package models defines the request and response shapes of the hello service.
package models

// DefaultName is greeted when a GET request carries no name
const DefaultName = "world"

// HelloRequest represents the POST /hello request body
type HelloRequest struct {
	Name *string `json:"name"` // nil when the field is missing or null
}

// HelloResponse represents the body returned by every hello route
type HelloResponse struct {
	Hello string `json:"hello"`
}

// HasName reports whether the request carried a non-null name.
// An empty string counts as a name.
func (r *HelloRequest) HasName() bool {
	return r.Name != nil
}

// NewHelloResponse builds the response greeting name
func NewHelloResponse(name string) HelloResponse {
	return HelloResponse{Hello: name}
}
