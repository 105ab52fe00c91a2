package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const captchaPrefix = "captcha:"

type CaptchaRepo struct {
	client *goredis.Client
}

func NewCaptchaRepo(client *goredis.Client) *CaptchaRepo {
	return &CaptchaRepo{client: client}
}

func (r *CaptchaRepo) Store(ctx context.Context, captchaID, answer string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if captchaID == "" || answer == "" || ttl <= 0 {
		return fmt.Errorf("invalid captcha payload")
	}

	if err := r.client.Set(ctx, captchaKey(captchaID), answer, ttl).Err(); err != nil {
		return fmt.Errorf("store captcha answer: %w", err)
	}

	return nil
}

// Consume returns the stored answer and deletes it in the same command, so a
// captcha id can be redeemed at most once even under concurrent attempts.
func (r *CaptchaRepo) Consume(ctx context.Context, captchaID string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}
	if captchaID == "" {
		return "", false, nil
	}

	answer, err := r.client.GetDel(ctx, captchaKey(captchaID)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("consume captcha answer: %w", err)
	}

	return answer, true, nil
}

func captchaKey(captchaID string) string {
	return captchaPrefix + captchaID
}
