package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"livequiz-coordinator/internal/app"
	"livequiz-coordinator/internal/domain"
	pgloader "livequiz-coordinator/internal/infra/postgres"
	pgmigrations "livequiz-coordinator/internal/infra/postgres/migrations"
	infraredis "livequiz-coordinator/internal/infra/redis"
	"livequiz-coordinator/internal/scoring"
)

func TestQuizRoundEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedQuestionSet(t, ctx, pgURL, sampleSet())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuestionLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	questionRepo := infraredis.NewQuestionRepository(redisClient, loader, 5*time.Minute)

	set, err := questionRepo.GetQuestionSet(ctx, "set-1")
	if err != nil {
		t.Fatalf("load question set: %v", err)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}

	// Second read must come out of the redis cache intact.
	cached, err := questionRepo.GetQuestionSet(ctx, "set-1")
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if cached.Questions[0].Text != set.Questions[0].Text {
		t.Fatalf("cache mangled the set: %+v", cached)
	}

	// Run a full round through the coordinator with server-scored answers.
	coordinator := app.NewCoordinator(nil)
	coordinator.Apply(app.Register{ConnID: "conn-1", Name: "Alice"})
	coordinator.Apply(app.Register{ConnID: "conn-2", Name: "Bob"})
	coordinator.Apply(app.StartQuiz{ConnID: "conn-1"})

	aliceAnswers := []domain.Answer{{QuestionID: 1, SelectedOption: 1}}
	bobAnswers := []domain.Answer{
		{QuestionID: 1, SelectedOption: 1},
		{QuestionID: 2, SelectedOption: 1},
	}
	coordinator.Apply(app.CompleteQuiz{ConnID: "conn-1", Score: scoring.Score(set, aliceAnswers), Answers: aliceAnswers})
	events := coordinator.Apply(app.CompleteQuiz{ConnID: "conn-2", Score: scoring.Score(set, bobAnswers), Answers: bobAnswers})

	var final []domain.Result
	for _, ev := range events {
		if ev.Name == app.EventAllCompleted {
			final = ev.Payload.([]domain.Result)
		}
	}
	if len(final) != 2 {
		t.Fatalf("expected all-completed with 2 results, got %+v", events)
	}
	if final[0].Name != "Bob" || final[0].Score != 2 || final[1].Name != "Alice" || final[1].Score != 1 {
		t.Fatalf("unexpected final ranking: %+v", final)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedQuestionSet(t *testing.T, ctx context.Context, dsn string, set domain.QuestionSet) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal set: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO question_sets (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, set.ID, string(data)); err != nil {
		t.Fatalf("insert set: %v", err)
	}
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		ID:    "set-1",
		Title: "Sample",
		Questions: []domain.Question{
			{ID: 1, Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: 1},
			{ID: 2, Text: "Red planet?", Options: []string{"Venus", "Mars"}, CorrectAnswer: 1},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
