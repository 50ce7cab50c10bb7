package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fleetyard/rental-backend/internal/app"
	"github.com/fleetyard/rental-backend/internal/auth"
	"github.com/fleetyard/rental-backend/internal/client"
	"github.com/fleetyard/rental-backend/internal/user"
	"github.com/fleetyard/rental-backend/internal/vehicle"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		// Integration tests need a running Postgres with the migrations
		// applied; without one the suite is a no-op.
		log.Println("TEST_DB_DSN not set, skipping integration tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	appContainer := app.NewContainer(app.Config{
		DBPool:     testPool,
		JWTSecret:  "integration-test-secret",
		JWTTTL:     30 * time.Minute,
		BcryptCost: 4, // Lower cost for testing purposes
		Logger:     zerolog.Nop(),
	})

	testRouter = appContainer.Router
	jwtManager = appContainer.JWTManager

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.clients CASCADE",
		"TRUNCATE TABLE public.vehicles CASCADE",
		"TRUNCATE TABLE public.users CASCADE",
	}
	for _, q := range queries {
		_, err := testPool.Exec(ctx, q)
		if err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, email, password string) *user.User {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	hash, err := hasher.Hash(password)
	require.NoError(t, err, "Failed to hash password")

	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  &email,
		IsActive:     true,
	}

	repo := user.NewPgxRepository(testPool)
	err = repo.Create(context.Background(), u)
	require.NoError(t, err, "Failed to create test user in DB")

	savedUser, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err, "Failed to fetch created user")

	return savedUser
}

func createTestVehicle(t *testing.T, plate string) *vehicle.Vehicle {
	v := &vehicle.Vehicle{
		Plate:     plate,
		Brand:     "Toyota",
		Model:     "Corolla",
		Year:      2023,
		DailyRate: 45.50,
		IsActive:  true,
	}

	repo := vehicle.NewPgxRepository(testPool)
	err := repo.Create(context.Background(), v)
	require.NoError(t, err, "Failed to create test vehicle in DB")

	return v
}

func createTestClient(t *testing.T, name, document string) *client.Client {
	cl := &client.Client{
		Name:       name,
		DocumentID: document,
	}

	repo := client.NewPgxRepository(testPool)
	err := repo.Create(context.Background(), cl)
	require.NoError(t, err, "Failed to create test client in DB")

	return cl
}

func generateToken(t *testing.T, u *user.User) string {
	token, err := jwtManager.GenerateAccessToken(u.ID, u.Email)
	require.NoError(t, err, "Failed to generate token")
	return token
}
