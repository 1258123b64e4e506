package mailer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sfdsa-platform/backend/pkg/mailer"
	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_TaskHandler(t *testing.T) {
	mock := &testutil.MockMailer{}
	handler := mailer.TaskHandler(mock)

	b, err := json.Marshal(mailer.Mail{
		To:      "friend@example.com",
		Subject: "You're invited",
		Body:    "<p>Join us</p>",
	})
	require.NoError(t, err)

	handler(context.Background(), &pubsub.Pack{Msg: b}, time.Now())

	require.Len(t, mock.Sent, 1)
	require.Equal(t, "friend@example.com", mock.Sent[0].To)
	require.Equal(t, "You're invited", mock.Sent[0].Subject)
}

func Test_TaskHandler_badPayload(t *testing.T) {
	mock := &testutil.MockMailer{}
	handler := mailer.TaskHandler(mock)

	handler(context.Background(), &pubsub.Pack{Msg: []byte("not json")}, time.Now())
	require.Empty(t, mock.Sent)
}
