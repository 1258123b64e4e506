package testutil

import (
	"context"

	"github.com/sfdsa-platform/backend/pkg/mailer"
)

type MockMailer struct {
	SendFunc func(context.Context, mailer.Mail) error

	Sent []mailer.Mail
}

func (m *MockMailer) Send(ctx context.Context, mail mailer.Mail) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, mail)
	}

	m.Sent = append(m.Sent, mail)
	return nil
}
