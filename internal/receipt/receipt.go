// Package receipt renders checkout receipts as RFC 5322 messages and drops
// them into a local outbox directory.
package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/money"
)

const (
	attachmentName = "receipt.json"
	mirrorTimeout  = 20 * time.Second
)

// Outbox writes receipts as .eml files into a directory.
type Outbox struct {
	dir    string
	from   *mail.Address
	mirror Mirror
	logger logrus.FieldLogger
}

// NewOutbox returns an outbox writing into dir with the given From address
// ("Name <addr>" or a bare address).
func NewOutbox(dir, from string) (*Outbox, error) {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("parsing receipt sender %q: %w", from, err)
	}
	return &Outbox{dir: dir, from: addr, logger: logging.Discard()}, nil
}

// WithMirror also hands every written receipt to m. Mirror failures are
// logged; the local file is still the receipt of record.
func (o *Outbox) WithMirror(m Mirror, logger logrus.FieldLogger) *Outbox {
	o.mirror = m
	if logger != nil {
		o.logger = logger.WithField("component", "receipts")
	}
	return o
}

// WriteReceipt renders r into <dir>/<id>.eml and returns the path.
func (o *Outbox) WriteReceipt(r model.Receipt) (string, error) {
	if err := os.MkdirAll(o.dir, 0o700); err != nil {
		return "", fmt.Errorf("creating outbox %s: %w", o.dir, err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, o.from, r); err != nil {
		return "", err
	}

	path := filepath.Join(o.dir, r.ID+".eml")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("writing receipt %s: %w", path, err)
	}

	if o.mirror != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := o.mirror.Append(ctx, buf.Bytes(), r.CreatedAt); err != nil {
			o.logger.WithError(err).WithField("receipt", r.ID).Warn("receipt not copied to mailbox")
		}
	}
	return path, nil
}

// Render writes r as a multipart message: a plain-text summary followed by
// the receipt as a JSON attachment.
func Render(w io.Writer, from *mail.Address, r model.Receipt) error {
	var h mail.Header
	h.SetDate(r.CreatedAt)
	h.SetAddressList("From", []*mail.Address{from})
	if r.Email != "" {
		h.SetAddressList("To", []*mail.Address{{Address: r.Email}})
	}
	h.SetSubject(fmt.Sprintf("Your order %s", shortID(r.ID)))
	h.SetMessageID(r.ID + "@taskshop.local")

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating receipt message: %w", err)
	}

	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	tw, err := mw.CreateSingleInline(th)
	if err != nil {
		return fmt.Errorf("creating receipt body: %w", err)
	}
	if _, err := io.WriteString(tw, Summary(r)); err != nil {
		return fmt.Errorf("writing receipt body: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing receipt body: %w", err)
	}

	var ah mail.AttachmentHeader
	ah.SetContentType("application/json", nil)
	ah.SetFilename(attachmentName)
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("creating receipt attachment: %w", err)
	}
	enc := json.NewEncoder(aw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding receipt attachment: %w", err)
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("closing receipt attachment: %w", err)
	}

	return mw.Close()
}

// Summary is the human-readable receipt text.
func Summary(r model.Receipt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order %s\n", r.ID)
	fmt.Fprintf(&sb, "Placed %s\n\n", r.CreatedAt.Format("2 Jan 2006 15:04 MST"))

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, line := range r.Lines {
		fmt.Fprintf(tw, "%s\t%d x\t%s\t\n",
			line.Product.Name, line.Quantity, money.Rupiah(line.LineTotal()))
	}
	tw.Flush()

	shipping := money.Rupiah(r.Totals.Shipping)
	if r.Totals.Shipping == 0 {
		shipping = "Free"
	}
	fmt.Fprintf(&sb, "\nSubtotal: %s\n", money.Rupiah(r.Totals.Subtotal))
	fmt.Fprintf(&sb, "Shipping: %s\n", shipping)
	fmt.Fprintf(&sb, "Tax:      %s\n", money.Rupiah(r.Totals.Tax))
	fmt.Fprintf(&sb, "Total:    %s\n", money.Rupiah(r.Totals.GrandTotal))
	return sb.String()
}

// Read parses a receipt message, returning the summary text and the
// decoded attachment.
func Read(rd io.Reader) (string, model.Receipt, error) {
	var (
		text    string
		r       model.Receipt
		decoded bool
	)

	mr, err := mail.CreateReader(rd)
	if err != nil {
		return "", r, fmt.Errorf("reading receipt message: %w", err)
	}
	defer mr.Close()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", r, fmt.Errorf("reading receipt part: %w", err)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", r, fmt.Errorf("reading receipt body: %w", err)
			}
			text = string(body)
		case *mail.AttachmentHeader:
			if name, _ := h.Filename(); name != attachmentName {
				continue
			}
			if err := json.NewDecoder(part.Body).Decode(&r); err != nil {
				return "", r, fmt.Errorf("decoding receipt attachment: %w", err)
			}
			decoded = true
		}
	}

	if !decoded {
		return text, r, fmt.Errorf("receipt message has no %s attachment", attachmentName)
	}
	return text, r, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
