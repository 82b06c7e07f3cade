// Command seed loads development fixtures: an admin, a therapist, a few
// clients and two appointments. Not for production use; it wipes existing
// data first.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoobgamer12/margawellness/config"
	"github.com/thenoobgamer12/margawellness/db"
	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	repo "github.com/thenoobgamer12/margawellness/internal/clinic/repository/postgres"
	"github.com/thenoobgamer12/margawellness/pkg/constant"
	"github.com/thenoobgamer12/margawellness/pkg/logger"
)

func main() {
	ctx := context.Background()
	log := logger.Init(logger.Options{Pretty: true})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	for _, table := range []string{"audit_events", "appointments", "clients", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("clear failed")
		}
	}

	users := repo.NewUserRepository(pool)
	clients := repo.NewClientRepository(pool)
	appts := repo.NewAppointmentRepository(pool)

	admin := mustUser("admin", "adminpass", domain.RoleAdmin)
	therapist := mustUser("therapist1", "therapistpass", domain.RoleTherapist)
	for _, u := range []*domain.User{admin, therapist} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal().Err(err).Str("username", u.Username).Msg("user insert failed")
		}
	}

	fixtures := []*domain.Client{
		newClient("Alice Smith", 30, "Female", "New York", "Anxiety", therapist.ID),
		newClient("Bob Johnson", 45, "Male", "Los Angeles", "Depression", therapist.ID),
		newClient("Charlie Brown", 25, "Male", "Chicago", "PTSD", therapist.ID),
	}
	for _, c := range fixtures {
		if err := clients.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("name", c.Name).Msg("client insert failed")
		}
	}

	loc := cfg.Schedule.Location()
	now := time.Now().In(loc)
	for i, c := range fixtures[:2] {
		slot := time.Date(now.Year(), now.Month(), now.Day(), 10+i, 0, 0, 0, loc)
		appt := &domain.Appointment{
			ID:          uuid.NewString(),
			ClientID:    c.ID,
			TherapistID: therapist.ID,
			Time:        slot.UTC(),
			CreatedAt:   time.Now(),
		}
		if err := appts.Create(ctx, appt); err != nil {
			log.Fatal().Err(err).Msg("appointment insert failed")
		}
	}

	log.Info().Msg("database seeded")
}

func mustUser(username, password string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constant.BcryptCost)
	if err != nil {
		panic(err)
	}
	now := time.Now()
	return &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newClient(name string, age int, gender, city, caseType, therapistID string) *domain.Client {
	now := time.Now()
	return &domain.Client{
		ID:                  uuid.NewString(),
		Name:                name,
		Age:                 age,
		Gender:              gender,
		AddressCity:         city,
		CaseType:            caseType,
		AssignedTherapistID: therapistID,
		Status:              domain.ClientOpen,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
