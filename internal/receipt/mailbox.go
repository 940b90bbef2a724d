package receipt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/nhle/taskshop/internal/model"
)

// DefaultFolder is used when receipts.imap.folder is empty.
const DefaultFolder = "Receipts"

// Mirror receives a copy of every rendered receipt.
type Mirror interface {
	Append(ctx context.Context, raw []byte, date time.Time) error
}

// Mailbox files receipts into a folder on an IMAP server.
type Mailbox struct {
	host     string
	port     string
	username string
	password string
	tls      bool
	folder   string
}

var _ Mirror = (*Mailbox)(nil)

// NewMailbox returns a mailbox for cfg, authenticating with password.
func NewMailbox(cfg model.IMAPConfig, password string) *Mailbox {
	folder := cfg.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	return &Mailbox{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: password,
		tls:      cfg.TLS,
		folder:   folder,
	}
}

// Folder is the mailbox receipts are appended to.
func (m *Mailbox) Folder() string {
	return m.folder
}

func (m *Mailbox) connect() (*imapclient.Client, error) {
	addr := net.JoinHostPort(m.host, m.port)

	var (
		client *imapclient.Client
		err    error
	)
	if m.tls {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(m.username, m.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP login for %s: %w", m.username, err)
	}
	return client, nil
}

// Append uploads raw as a seen message dated date, creating the folder on
// first use.
func (m *Mailbox) Append(ctx context.Context, raw []byte, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := m.connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	stop := context.AfterFunc(ctx, func() { _ = client.Close() })
	defer stop()

	if err := client.Create(m.folder, nil).Wait(); err != nil && !alreadyExists(err) {
		return fmt.Errorf("creating folder %s: %w", m.folder, err)
	}

	cmd := client.Append(m.folder, int64(len(raw)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagSeen},
		Time:  date,
	})
	if _, err := cmd.Write(raw); err != nil {
		return fmt.Errorf("uploading receipt: %w", err)
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("uploading receipt: %w", err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("appending to %s: %w", m.folder, err)
	}
	return nil
}

func alreadyExists(err error) bool {
	var imapErr *imap.Error
	return errors.As(err, &imapErr) && imapErr.Code == imap.ResponseCodeAlreadyExists
}
