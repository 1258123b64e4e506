package common

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/sfdsa-platform/backend/pkg/xcontext"

	mathUtil "github.com/pkg/math"
)

// Pagination clamps a client-provided limit/offset pair against the server
// configuration. A zero limit falls back to the configured default.
func Pagination(ctx context.Context, limit, offset int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	limit = mathUtil.MinInt(limit, cfg.MaxLimit)
	offset = mathUtil.MaxInt(offset, 0)
	return limit, offset
}

// GenerateReferralCode returns a short random code safe for use in URLs.
func GenerateReferralCode() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
