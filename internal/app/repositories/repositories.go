package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	CourseRepository       *CourseRepository
	ReviewRepository       *ReviewRepository
	EnrollmentRepository   *EnrollmentRepository
	CartRepository         *CartRepository
	PurchaseRepository     *PurchaseRepository
	PointsRepository       *PointsRepository
	TutoringRepository     *TutoringRepository
	SubscriptionRepository *SubscriptionRepository
	AchievementRepository  *AchievementRepository
	StatsRepository        *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		CourseRepository:       NewCourseRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		CartRepository:         NewCartRepository(db),
		PurchaseRepository:     NewPurchaseRepository(db),
		PointsRepository:       NewPointsRepository(db),
		TutoringRepository:     NewTutoringRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		AchievementRepository:  NewAchievementRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
