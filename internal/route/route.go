// Package route names the application's screens and decides which of them
// need a signed-in session.
package route

import "strings"

// Paths of the application's screens.
const (
	Home          = "/"
	Login         = "/login"
	Register      = "/register"
	Tasks         = "/tasks"
	Products      = "/products"
	Cart          = "/cart"
	productPrefix = "/products/"
)

// Name identifies a screen independent of its parameters.
type Name int

const (
	NameNotFound Name = iota
	NameHome
	NameLogin
	NameRegister
	NameTasks
	NameProducts
	NameProductDetail
	NameCart
)

// Route is a parsed path.
type Route struct {
	Name Name
	Path string
	// ProductID is set for NameProductDetail.
	ProductID string
}

// Product returns the detail path for a product id.
func Product(id string) string {
	return productPrefix + id
}

// Parse classifies path. Unknown paths yield NameNotFound.
func Parse(path string) Route {
	p := strings.TrimSpace(path)
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	r := Route{Path: p}

	switch p {
	case Home:
		r.Name = NameHome
	case Login:
		r.Name = NameLogin
	case Register:
		r.Name = NameRegister
	case Tasks:
		r.Name = NameTasks
	case Products:
		r.Name = NameProducts
	case Cart:
		r.Name = NameCart
	default:
		id, ok := strings.CutPrefix(p, productPrefix)
		if ok && id != "" && !strings.Contains(id, "/") {
			r.Name = NameProductDetail
			r.ProductID = id
		}
	}
	return r
}

// Protected reports whether the route needs a session.
func (r Route) Protected() bool {
	switch r.Name {
	case NameTasks, NameProducts, NameProductDetail, NameCart:
		return true
	}
	return false
}

// Resolve returns the route to display for path. Protected routes without
// a session resolve to the login screen.
func Resolve(path string, signedIn bool) Route {
	r := Parse(path)
	if r.Protected() && !signedIn {
		return Parse(Login)
	}
	return r
}
