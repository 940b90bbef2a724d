package app

import (
	"context"

	"github.com/nhle/taskshop/internal/auth"
	"github.com/nhle/taskshop/internal/model"
)

// fakeProvider implements auth.Provider for testing. The only valid
// password is "secret".
type fakeProvider struct {
	auth.Broadcaster

	restored *model.Principal
}

func (f *fakeProvider) Restore(context.Context) error {
	f.Publish(f.restored)
	return nil
}

func (f *fakeProvider) Login(_ context.Context, email, password string) error {
	if password != "secret" {
		return auth.NewError(auth.CodeInvalidPassword)
	}
	f.Publish(&model.Principal{UID: "u-" + email, Email: email})
	return nil
}

func (f *fakeProvider) Signup(ctx context.Context, email, password, _ string) error {
	return f.Login(ctx, email, password)
}

func (f *fakeProvider) Logout(context.Context) error {
	f.Publish(nil)
	return nil
}
