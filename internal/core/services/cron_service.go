package services

import (
	"context"
	"log"

	"libradesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance. The only job is the nightly
// purge of expired refresh tokens. Overdue loans are not swept in the
// background: a loan becomes overdue when it is returned late, never before.
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 03:30 daily
	if _, err := s.cron.AddFunc("30 3 * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to register token cleanup job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Cron service started (token cleanup 03:30 daily)")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) purgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Expired token cleanup failed: %v", err)
		return
	}
	log.Println("🧹 Expired refresh tokens purged")
}
