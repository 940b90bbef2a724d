package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		name Name
		id   string
	}{
		{"/", NameHome, ""},
		{"/login", NameLogin, ""},
		{"/register", NameRegister, ""},
		{"/tasks", NameTasks, ""},
		{"/tasks/", NameTasks, ""},
		{"/products", NameProducts, ""},
		{"/products/3", NameProductDetail, "3"},
		{"/products/3/reviews", NameNotFound, ""},
		{"/cart", NameCart, ""},
		{"/admin", NameNotFound, ""},
		{"", NameNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := Parse(tt.path)
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, tt.id, r.ProductID)
		})
	}
}

func TestResolve_RedirectsProtectedWithoutSession(t *testing.T) {
	for _, p := range []string{Tasks, Products, Product("1"), Cart} {
		assert.Equal(t, NameLogin, Resolve(p, false).Name, p)
		assert.NotEqual(t, NameLogin, Resolve(p, true).Name, p)
	}
}

func TestResolve_PublicRoutesIgnoreSession(t *testing.T) {
	for _, p := range []string{Home, Login, Register} {
		assert.Equal(t, Parse(p).Name, Resolve(p, false).Name)
		assert.Equal(t, Parse(p).Name, Resolve(p, true).Name)
	}
	assert.Equal(t, NameNotFound, Resolve("/nope", false).Name)
}
