package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	sessionKeyPrefix = "session:"
	maxUpdateRetries = 5
)

var ErrConcurrentUpdate = errors.New("session was modified concurrently")

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	// Update loads the session, applies mutate and stores the result. The write
	// only succeeds if nobody changed the session in between; otherwise mutate
	// runs again on the fresh copy.
	Update(ctx context.Context, id string, mutate func(session *entity.Session) error) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository stores sessions as JSON values. Every write refreshes
// the key's TTL; a zero ttl keeps sessions forever.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, sessionKeyPrefix+session.ID, sessionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	return getSession(ctx, that.client, id)
}

func (that *dbSession) Update(ctx context.Context, id string, mutate func(session *entity.Session) error) (*entity.Session, error) {
	key := sessionKeyPrefix + id

	var updated *entity.Session
	txf := func(tx *redis.Tx) error {
		session, err := getSession(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = mutate(session); err != nil {
			return err
		}

		sessionJSON, err := marshalSession(session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, that.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = session
		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrConcurrentUpdate, id)
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getSession(ctx context.Context, client getter, id string) (*entity.Session, error) {
	response, err := client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal(response, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func marshalSession(session *entity.Session) ([]byte, error) {
	session.UpdatedAt = time.Now().UTC()

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("could not marshal session: %w", err)
	}

	return sessionJSON, nil
}
