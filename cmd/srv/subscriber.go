package main

import (
	"github.com/sfdsa-platform/backend/pkg/kafka"
	"github.com/sfdsa-platform/backend/pkg/mailer"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()

	s.subscriber = kafka.NewSubscriber(
		"sfdsa-mailer",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Email.Topic},
		mailer.TaskHandler(mailer.NewSMTPMailer(s.configs.Email)),
	)

	s.subscriber.Subscribe(s.ctx)

	// Subscribe returns once the consumer group is ready; the claims are
	// consumed on a background goroutine.
	<-s.ctx.Done()
	return nil
}
