package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sfdsa-platform/backend/pkg/pubsub"
	"github.com/sfdsa-platform/backend/pkg/xcontext"
)

// TaskHandler returns a subscribe handler that decodes queued Mail tasks
// and delivers them through the given mailer.
func TaskHandler(m Mailer) pubsub.SubscribeHandler {
	return func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
		var mail Mail
		if err := json.Unmarshal(pack.Msg, &mail); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal mail task: %v", err)
			return
		}

		if err := m.Send(ctx, mail); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot send mail to %s: %v", mail.To, err)
			return
		}

		xcontext.Logger(ctx).Infof("Sent mail to %s", mail.To)
	}
}
