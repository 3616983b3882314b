// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/reputation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
}

var (
	skillCatalog = map[string][]string{
		"Technology": {
			"Go Programming", "Python Programming", "Web Development", "Linux Administration",
			"Docker", "Kubernetes", "SQL", "Data Analysis", "Machine Learning", "Git",
		},
		"Languages": {
			"Spanish Conversation", "French Conversation", "German Basics", "Japanese Basics",
			"English Writing", "Mandarin Basics",
		},
		"Music": {
			"Guitar", "Piano", "Singing", "Music Production", "Drums", "Songwriting",
		},
		"Crafts": {
			"Woodworking", "Knitting", "Pottery", "Sewing", "Leatherwork",
		},
		"Fitness": {
			"Yoga", "Running Coaching", "Strength Training", "Cycling", "Swimming",
		},
		"Cooking": {
			"Italian Cooking", "Baking", "Sushi Making", "Meal Prep", "Barbecue",
		},
		"Home": {
			"Gardening", "Plumbing Basics", "Electrical Basics", "Painting", "Furniture Repair",
		},
	}

	skillLevels = []models.SkillLevel{
		models.SkillLevelBeginner,
		models.SkillLevelIntermediate,
		models.SkillLevelAdvanced,
		models.SkillLevelExpert,
	}

	swapMessages = []string{
		"Hi! I saw your profile and think we'd be a great match for a swap.",
		"Would love to trade lessons — interested?",
		"I've wanted to learn this for ages. Happy to teach you in return!",
		"Your skills look exactly like what I'm looking for.",
		"Let me know if you're up for an exchange sometime this month.",
	}

	responseMessages = []string{
		"Sounds great, let's do it!",
		"Happy to swap. When works for you?",
		"Sorry, I'm fully booked at the moment.",
		"Not quite what I'm looking for right now, but thanks!",
		"Sure thing — message me to set up a time.",
	}

	feedbackComments = []string{
		"Patient teacher, explained everything clearly.",
		"Great session, learned a lot!",
		"Showed up on time and well prepared.",
		"Went above and beyond. Highly recommend.",
		"Good swap overall, would trade again.",
		"Sessions ran a bit short but the content was solid.",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d swaps...", opts.NumUsers, opts.NumSwaps)

	gofakeit.Seed(time.Now().UnixNano())

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	swaps, err := createSwaps(db, users, opts.NumSwaps)
	if err != nil {
		return fmt.Errorf("failed to create swaps: %w", err)
	}
	log.Printf("✓ %d swap requests created", len(swaps))

	feedbackCount, err := createFeedback(db, swaps)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	log.Printf("✓ %d feedback records created", feedbackCount)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE feedbacks, notifications, reports, swap_requests, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func randomSkills(r *rand.Rand, min, max int) []models.Skill {
	count := min + r.Intn(max-min+1)
	categories := make([]string, 0, len(skillCatalog))
	for c := range skillCatalog {
		categories = append(categories, c)
	}

	skills := make([]models.Skill, 0, count)
	seen := map[string]bool{}
	for len(skills) < count {
		category := categories[r.Intn(len(categories))]
		names := skillCatalog[category]
		name := names[r.Intn(len(names))]
		if seen[name] {
			continue
		}
		seen[name] = true
		skills = append(skills, models.Skill{
			ID:          uuid.New().String(),
			Name:        name,
			Category:    category,
			Description: gofakeit.Sentence(8),
			Level:       skillLevels[r.Intn(len(skillLevels))],
		})
	}
	return skills
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		admin := models.User{
			Name:          "Admin",
			Email:         "admin@example.com",
			Password:      string(hashedPassword),
			Role:          models.RoleAdmin,
			IsPublic:      false,
			TrustScore:    100,
			SkillsOffered: randomSkills(r, 1, 2),
		}
		test := models.User{
			Name:          "Test User",
			Email:         "test@example.com",
			Password:      string(hashedPassword),
			Role:          models.RoleUser,
			IsPublic:      true,
			TrustScore:    100,
			SkillsOffered: randomSkills(r, 2, 4),
			SkillsWanted:  randomSkills(r, 1, 3),
		}
		for _, u := range []models.User{admin, test} {
			user := u
			if err := db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user := models.User{
			Name:          gofakeit.Name(),
			Email:         fmt.Sprintf("%s%d@example.com", gofakeit.Username(), i),
			Password:      string(hashedPassword),
			PhotoURL:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Location:      gofakeit.City(),
			SkillsOffered: randomSkills(r, 1, 6),
			SkillsWanted:  randomSkills(r, 1, 4),
			Availability: models.Availability{
				Weekends: r.Intn(2) == 0,
				Evenings: r.Intn(2) == 0,
			},
			IsPublic:   r.Intn(10) != 0, // ~10% private profiles
			TrustScore: 100,
			Role:       models.RoleUser,
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", user.Email, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// seedStatuses weights the generated swap population toward the states a
// development environment most needs to exercise.
var seedStatuses = []models.SwapStatus{
	models.SwapStatusPending, models.SwapStatusPending, models.SwapStatusPending,
	models.SwapStatusAccepted, models.SwapStatusAccepted,
	models.SwapStatusCompleted, models.SwapStatusCompleted, models.SwapStatusCompleted,
	models.SwapStatusRejected,
	models.SwapStatusCancelled,
}

func createSwaps(db *gorm.DB, users []models.User, count int) ([]models.SwapRequest, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	swaps := make([]models.SwapRequest, 0, count)

	if len(users) < 2 {
		return swaps, nil
	}

	for i := 0; i < count; i++ {
		from := users[r.Intn(len(users))]
		to := users[r.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}

		offered := from.SkillsOffered
		if len(offered) > 2 {
			offered = offered[:2]
		}
		wanted := to.SkillsOffered
		if len(wanted) > 2 {
			wanted = wanted[:2]
		}
		if len(offered) == 0 || len(wanted) == 0 {
			continue
		}

		status := seedStatuses[r.Intn(len(seedStatuses))]
		createdAt := time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour)

		swap := models.SwapRequest{
			FromUserID:    from.ID,
			ToUserID:      to.ID,
			FromUser:      from.Snapshot(),
			ToUser:        to.Snapshot(),
			SkillsOffered: offered,
			SkillsWanted:  wanted,
			Status:        status,
			Message:       swapMessages[r.Intn(len(swapMessages))],
			CreatedAt:     createdAt,
		}

		if status != models.SwapStatusPending {
			swap.ResponseMessage = responseMessages[r.Intn(len(responseMessages))]
		}
		if status == models.SwapStatusCompleted {
			completedAt := createdAt.Add(time.Duration(1+r.Intn(14*24)) * time.Hour)
			swap.CompletedAt = &completedAt
		}

		if err := db.Create(&swap).Error; err != nil {
			log.Printf("Failed to create swap: %v", err)
			continue
		}
		swaps = append(swaps, swap)

		// Both participants normally see a notification trail.
		notif := models.Notification{
			UserID:    to.ID,
			Type:      models.NotificationSwapRequest,
			Title:     "New swap request",
			Message:   fmt.Sprintf("%s wants to swap skills with you", from.Name),
			IsRead:    r.Intn(2) == 0,
			RelatedID: swap.ID,
			CreatedAt: createdAt,
		}
		if err := db.Create(&notif).Error; err != nil {
			log.Printf("Failed to create notification: %v", err)
		}
	}

	return swaps, nil
}

// createFeedback leaves ratings on completed swaps and applies the same
// trust-score, points, and badge updates the live feedback path performs, so
// seeded reputations are internally consistent.
func createFeedback(db *gorm.DB, swaps []models.SwapRequest) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for i := range swaps {
		swap := swaps[i]
		if swap.Status != models.SwapStatusCompleted {
			continue
		}
		// Roughly 80% of completed swaps get at least one rating.
		if r.Intn(5) == 0 {
			continue
		}

		raters := []uint{swap.FromUserID}
		if r.Intn(2) == 0 {
			raters = append(raters, swap.ToUserID)
		}

		for _, raterID := range raters {
			ratedID := swap.OtherParticipant(raterID)

			var rater, rated models.User
			if err := db.First(&rater, raterID).Error; err != nil {
				continue
			}
			if err := db.First(&rated, ratedID).Error; err != nil {
				continue
			}

			rating := 3 + r.Intn(3) // skew positive, like real marketplaces
			if r.Intn(8) == 0 {
				rating = 1 + r.Intn(2)
			}

			feedback := models.Feedback{
				SwapRequestID: swap.ID,
				FromUserID:    rater.ID,
				ToUserID:      rated.ID,
				FromUserName:  rater.Name,
				ToUserName:    rated.Name,
				Rating:        rating,
				Comment:       feedbackComments[r.Intn(len(feedbackComments))],
			}
			if err := db.Create(&feedback).Error; err != nil {
				log.Printf("Failed to create feedback: %v", err)
				continue
			}
			created++

			rated.TrustScore = reputation.NextTrustScore(rated.TrustScore, rating)
			rated.Points += reputation.PointsForRating(rating)
			rated.Badges = append(rated.Badges, reputation.EvaluateBadges(&rated)...)
			if err := db.Save(&rated).Error; err != nil {
				log.Printf("Failed to update reputation for user %d: %v", rated.ID, err)
			}
		}
	}

	return created, nil
}
