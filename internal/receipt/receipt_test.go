package receipt

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
)

// fakeMirror implements Mirror for testing
type fakeMirror struct {
	raw  []byte
	date time.Time
	err  error
}

func (f *fakeMirror) Append(_ context.Context, raw []byte, date time.Time) error {
	f.raw = append([]byte(nil), raw...)
	f.date = date
	return f.err
}

func sampleReceipt() model.Receipt {
	return model.Receipt{
		ID:    "0b5f4c1e-8a0e-4f55-9a8d-3f0c2b7e1a11",
		Email: "ana@example.com",
		Lines: []model.CartLine{
			{Product: model.Product{ID: "4", Name: "Book Light", Price: 349_900}, Quantity: 2},
		},
		Totals:    model.Totals{Subtotal: 699_800, Shipping: 15_000, Tax: 76_978, GrandTotal: 791_778},
		CreatedAt: time.Date(2024, 3, 9, 8, 30, 0, 0, time.UTC),
	}
}

func TestRenderAndRead(t *testing.T) {
	var buf bytes.Buffer
	from := &mail.Address{Name: "TaskShop", Address: "orders@taskshop.local"}
	require.NoError(t, Render(&buf, from, sampleReceipt()))

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Your order 0b5f4c1e")
	assert.Contains(t, raw, "ana@example.com")

	text, got, err := Read(&buf)
	require.NoError(t, err)
	assert.Contains(t, text, "Book Light")
	assert.Contains(t, text, "Rp 699.800")
	assert.Contains(t, text, "Rp 791.778")
	assert.Equal(t, sampleReceipt().Totals, got.Totals)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestSummary_FreeShipping(t *testing.T) {
	r := sampleReceipt()
	r.Totals.Shipping = 0
	assert.Contains(t, Summary(r), "Shipping: Free")
}

func TestOutbox_WriteReceipt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	o, err := NewOutbox(dir, "TaskShop <orders@taskshop.local>")
	require.NoError(t, err)

	path, err := o.WriteReceipt(sampleReceipt())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, sampleReceipt().ID+".eml"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, got, err := Read(f)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestNewOutbox_RejectsBadSender(t *testing.T) {
	_, err := NewOutbox(t.TempDir(), "not an address")
	assert.Error(t, err)
}

func TestOutbox_MirrorGetsSameMessage(t *testing.T) {
	o, err := NewOutbox(t.TempDir(), "orders@taskshop.local")
	require.NoError(t, err)
	m := &fakeMirror{}
	o.WithMirror(m, nil)

	path, err := o.WriteReceipt(sampleReceipt())
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, m.raw)
	assert.True(t, sampleReceipt().CreatedAt.Equal(m.date))
}

func TestOutbox_MirrorFailureKeepsFile(t *testing.T) {
	o, err := NewOutbox(t.TempDir(), "orders@taskshop.local")
	require.NoError(t, err)
	o.WithMirror(&fakeMirror{err: errors.New("mailbox full")}, nil)

	path, err := o.WriteReceipt(sampleReceipt())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestNewMailbox_DefaultFolder(t *testing.T) {
	m := NewMailbox(model.IMAPConfig{Host: "imap.example.com", Port: "993"}, "pw")
	assert.Equal(t, DefaultFolder, m.Folder())

	m = NewMailbox(model.IMAPConfig{Host: "imap.example.com", Folder: "Orders"}, "pw")
	assert.Equal(t, "Orders", m.Folder())
}

func TestMailbox_AppendUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	m := NewMailbox(model.IMAPConfig{Host: host, Port: port, Username: "ana", TLS: true}, "pw")
	err = m.Append(context.Background(), []byte("x"), time.Now())
	assert.ErrorContains(t, err, "connecting to IMAP")
}

func TestMailbox_AppendCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMailbox(model.IMAPConfig{Host: "imap.example.com", Port: "993", Username: "ana"}, "pw")
	assert.ErrorIs(t, m.Append(ctx, []byte("x"), time.Now()), context.Canceled)
}
