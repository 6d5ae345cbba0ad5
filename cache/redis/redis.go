package redis

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	redigo "github.com/gomodule/redigo/redis"

	"utmkit/cache/cacher"
)

func serialize(entry *cacher.Entry) (*bytes.Buffer, error) {
	var buffer bytes.Buffer
	err := gob.NewEncoder(&buffer).Encode(entry)
	return &buffer, err
}

func deserialize(valBytes []byte) (*cacher.Entry, error) {
	var entry cacher.Entry
	if err := gob.NewDecoder(bytes.NewReader(valBytes)).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

type redis struct {
	pool *redigo.Pool
}

// New returns a Redis-backed engine. Keys are written with a TTL; nothing is
// ever persisted without one.
func New(host string, port int) cacher.Engine {
	pool := &redigo.Pool{
		MaxIdle:     8,
		IdleTimeout: 5 * time.Minute,
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
		},

		// Periodic check
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return &redis{pool}
}

func (r *redis) Get(key string) (*cacher.Entry, error) {
	data, err := redigo.Bytes(r.do("GET", key))
	if err == redigo.ErrNil {
		return nil, cacher.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("call GET: %w", err)
	}
	entry, err := deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}
	return entry, nil
}

func (r *redis) Set(key string, entry *cacher.Entry, expiration time.Duration) error {
	buffer, err := serialize(entry)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	seconds := int64(expiration.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if _, err := r.do("SET", key, buffer.Bytes(), "EX", seconds); err != nil {
		return fmt.Errorf("call SET: %w", err)
	}
	return nil
}

func (r *redis) do(commandName string, args ...interface{}) (reply interface{}, err error) {
	c := r.pool.Get()
	defer c.Close()
	return c.Do(commandName, args...)
}
