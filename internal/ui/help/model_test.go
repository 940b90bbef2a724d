package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/taskshop/internal/keys"
)

func TestDirectory_MarksProtectedScreens(t *testing.T) {
	k := keys.DefaultKeyMap()
	m := New(k, 100, 40)

	out := m.Directory()
	assert.Contains(t, out, "/products/<id>")
	assert.Equal(t, 4, strings.Count(out, "sign in first"))

	m.SetSignedIn(true)
	assert.NotContains(t, m.Directory(), "sign in first")
}

func TestView_ListsKeysAndScreens(t *testing.T) {
	k := keys.DefaultKeyMap()
	out := New(k, 120, 60).View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "/cart")
}
