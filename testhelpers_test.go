//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/furrymatch/service-matching/internal/application"
	matchEvents "github.com/furrymatch/service-matching/internal/events"
	"github.com/furrymatch/service-matching/internal/platform/database"
	"github.com/furrymatch/service-matching/internal/platform/kafka"
	"github.com/furrymatch/service-matching/internal/proto/events"
	"github.com/furrymatch/service-matching/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// matchingStack holds wired-up matching service components.
type matchingStack struct {
	Owners          *application.OwnerService
	Pets            *application.PetService
	Likes           *application.LikeService
	Chats           *application.ChatService
	Consumer        *matchEvents.MatchEventConsumer
	CleanupProducer func()
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(uuid.UUID, interface{}) {}

// setupContainers starts PostgreSQL and Kafka testcontainers, connects and
// applies the embedded migrations.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_matching",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_matching",
		SSLMode:  "disable",
	}

	// Poll until the pool can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(cfg, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(sqlDB, logger))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicMatchEvents, events.TopicChatEvents, events.TopicContractEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupMatchingStack wires the services the integration tests drive.
func setupMatchingStack(t *testing.T, db *gorm.DB, brokers []string) *matchingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	ownerRepo := repository.NewGormOwnerRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	likeRepo := repository.NewGormLikeeRepository(db)
	matchRepo := repository.NewGormMatchRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	tx := repository.NewGormTransactor(db)
	producer := kafka.NewProducer(brokers, logger)

	chats := application.NewChatService(chatRepo, matchRepo, petRepo, producer, noopBroadcaster{}, logger)
	groupID := fmt.Sprintf("test-matching-%s", uuid.New().String()[:8])

	return &matchingStack{
		Owners: application.NewOwnerService(ownerRepo, petRepo, matchRepo, logger),
		Pets: application.NewPetService(petRepo, repository.NewGormBreedRepository(db),
			repository.NewGormSearchCriteriaRepository(db), petRepo, ownerRepo, logger),
		Likes:           application.NewLikeService(likeRepo, matchRepo, petRepo, tx, producer, logger),
		Chats:           chats,
		Consumer:        matchEvents.NewMatchEventConsumer(brokers, groupID, chats, logger),
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedOwnerWithPet creates an owner profile and one pet.
func seedOwnerWithPet(t *testing.T, stack *matchingStack, province, sex string) (uuid.UUID, *application.PetDTO) {
	t.Helper()
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := stack.Owners.UpsertProfile(ctx, ownerID, application.UpsertProfileRequest{
		FirstName: "Owner",
		Province:  province,
	})
	require.NoError(t, err, "failed to seed owner")

	pet, err := stack.Pets.CreatePet(ctx, ownerID, application.CreatePetRequest{
		Name:    "Pet-" + ownerID.String()[:6],
		PetType: "DOG",
		Sex:     sex,
	})
	require.NoError(t, err, "failed to seed pet")
	return ownerID, pet
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
