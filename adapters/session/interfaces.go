package session

import "context"

// IStore persists session data server-side, keyed by session id.
type IStore interface {
	Load(ctx context.Context, id string) (map[string]string, error)
	Save(ctx context.Context, id string, data map[string]string) error
}

// ISession is the per-request view of one session.
type ISession interface {
	Load() error
	Get(key string) string
	Set(key, value string)
	Delete(key string)
	Clear()
	Save() error
}
