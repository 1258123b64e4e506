package main

import (
	"log"
	"net/http"

	"github.com/sfdsa-platform/backend/internal/middleware"
	"github.com/sfdsa-platform/backend/pkg/router"
	"github.com/sfdsa-platform/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadStorage()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngine()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Requests carry an optional access token. Public handlers use the
	// user id when present, for example to flag the caller's own row on
	// the leaderboard.
	s.router.Before(middleware.WithRequestUser())

	// Public API.
	router.POST(s.router, "/api/auth/register", s.userDomain.Register)
	router.POST(s.router, "/api/auth/login", s.userDomain.Login)
	router.GET(s.router, "/api/leaderboard", s.statisticDomain.GetLeaderboard)
	router.GET(s.router, "/api/briefings/today", s.briefingDomain.GetToday)
	router.GET(s.router, "/api/users/profile", s.userDomain.GetProfile)
	router.GET(s.router, "/api/donations/rules", s.donationDomain.GetRules)

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.PATCH(authRouter, "/api/users/profile/bio", s.userDomain.UpdateBio)
		router.GET(authRouter, "/api/users/points-history", s.userDomain.GetPointsHistory)
		router.GET(authRouter, "/api/users/rank", s.statisticDomain.GetRank)

		// Gamification API (admin)
		router.POST(authRouter, "/api/points/award", s.gamificationDomain.AwardPoints)
		router.POST(authRouter, "/api/badges/award", s.gamificationDomain.AwardBadge)

		// Briefing API
		router.POST(authRouter, "/api/briefings/attend", s.briefingDomain.RecordAttendance)
		router.POST(authRouter, "/api/briefings/share", s.briefingDomain.RecordShare)

		// Donation API
		router.POST(authRouter, "/api/donations", s.donationDomain.RecordDonation)
		router.POST(authRouter, "/api/donations/rules", s.donationDomain.CreateRule)
		router.POST(authRouter, "/api/donations/rules/deactivate", s.donationDomain.DeactivateRule)

		// Volunteer application API
		router.POST(authRouter, "/api/volunteer-applications/submit", s.applicationDomain.Submit)

		// Volunteer recruiter API
		router.GET(authRouter, "/api/volunteer-recruiter/dashboard", s.referralDomain.GetDashboard)
		router.POST(authRouter, "/api/volunteer-recruiter/send-referral", s.referralDomain.SendReferral)
		router.POST(authRouter, "/api/volunteer-recruiter/referrals/status", s.referralDomain.UpdateStatus)

		// Admin API
		router.POST(authRouter, "/api/admin/bootstrap", s.adminDomain.Bootstrap)
		router.POST(authRouter, "/api/admin/nft-tiers", s.adminDomain.CreateNFTTier)
		router.POST(authRouter, "/api/admin/badges", s.adminDomain.CreateBadge)
	}
}
