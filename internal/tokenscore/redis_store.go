package tokenscore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyScores       = "tokenscore:%s"         // hash: token -> score
	keyObservations = "tokenscore:%s:obs"     // hash: token -> observation count
	keyUpdated      = "tokenscore:%s:updated" // hash: token -> unix ms
)

// the read-modify-write runs as a single Lua script so it is atomic per user
// hash; clamping matches the other store implementations
var applyScript = redis.NewScript(`
	local old = tonumber(redis.call('HGET', KEYS[1], ARGV[1])) or tonumber(ARGV[2])
	local alpha = tonumber(ARGV[3])
	local mult = tonumber(ARGV[4])
	local reward = tonumber(ARGV[5])

	local next = old + alpha * mult * (reward - old)
	if next > 1 then next = 1 end
	if next < 0 then next = 0 end

	redis.call('HSET', KEYS[1], ARGV[1], next)
	local count = redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
	redis.call('HSET', KEYS[3], ARGV[1], ARGV[6])

	return {tostring(next), count}
`)

// RedisStore implements Store using Redis hashes, one set of hashes per user
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Scores(ctx context.Context, userID string) ([]Score, error) {
	scores, err := s.client.HGetAll(ctx, fmt.Sprintf(keyScores, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load token scores: %w", err)
	}

	if len(scores) == 0 {
		return nil, nil
	}

	counts, err := s.client.HGetAll(ctx, fmt.Sprintf(keyObservations, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load observation counts: %w", err)
	}

	updated, err := s.client.HGetAll(ctx, fmt.Sprintf(keyUpdated, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load update timestamps: %w", err)
	}

	out := make([]Score, 0, len(scores))

	for token, raw := range scores {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue // skip corrupt entries rather than failing the read
		}

		sc := Score{
			UserID: userID,
			Token:  token,
			Score:  value,
		}

		if c, err := strconv.Atoi(counts[token]); err == nil {
			sc.ObservationCount = c
		}

		if ms, err := strconv.ParseInt(updated[token], 10, 64); err == nil {
			sc.LastUpdatedAt = time.UnixMilli(ms)
		}

		out = append(out, sc)
	}

	return out, nil
}

func (s *RedisStore) Apply(ctx context.Context, userID, token string, reward, multiplier float64) (Score, error) {
	now := time.Now()

	keys := []string{
		fmt.Sprintf(keyScores, userID),
		fmt.Sprintf(keyObservations, userID),
		fmt.Sprintf(keyUpdated, userID),
	}

	result, err := applyScript.Run(ctx, s.client, keys,
		token,
		Baseline,
		Alpha,
		multiplier,
		reward,
		now.UnixMilli(),
	).Slice()

	if err != nil {
		return Score{}, fmt.Errorf("failed to apply token score update: %w", err)
	}

	if len(result) != 2 {
		return Score{}, fmt.Errorf("unexpected script result length: %d", len(result))
	}

	value, err := strconv.ParseFloat(result[0].(string), 64)
	if err != nil {
		return Score{}, fmt.Errorf("failed to parse updated score: %w", err)
	}

	count, ok := result[1].(int64)
	if !ok {
		return Score{}, fmt.Errorf("unexpected observation count type %T", result[1])
	}

	return Score{
		UserID:           userID,
		Token:            token,
		Score:            value,
		ObservationCount: int(count),
		LastUpdatedAt:    now,
	}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
