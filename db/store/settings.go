package store

import (
	"context"
	"time"
)

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

const getSetting = `
SELECT key, value, updated_at
FROM settings
WHERE key = $1
`

func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	row := q.db.QueryRowContext(ctx, getSetting, key)
	var s Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

const upsertSetting = `
INSERT INTO settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
RETURNING key, value, updated_at
`

type UpsertSettingParams struct {
	Key   string
	Value string
}

func (q *Queries) UpsertSetting(ctx context.Context, arg UpsertSettingParams) (Setting, error) {
	row := q.db.QueryRowContext(ctx, upsertSetting, arg.Key, arg.Value)
	var s Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}
