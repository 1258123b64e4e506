package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "sfdsa"
	s.app.Usage = "SFDSA recruitment and engagement backend"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `The main service included all apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Category:    "Worker",
			Description: `Runs the daily briefing cycle and leaderboard refresh jobs.`,
		},
		{
			Action:      s.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start the email subscriber service",
			Category:    "Worker",
			Description: `Consumes the outgoing email topic and delivers mails over SMTP.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate and seed the database",
			Category:    "Database",
			Description: `Creates missing tables and seeds the badge, tier, rule, and briefing catalogs.`,
		},
	}
}
