package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/coslynx/fitness-tracker/config"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
)

// Container holds the constructed infrastructure clients. It is built once
// in main and passed down explicitly; nothing in the tree reaches for a
// package-level singleton.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	PGPool *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client

	JWT       *helpers.JWTManager
	Cookies   *helpers.CookieManager
	RabbitPub *helpers.RabbitPublisher
}

// Close releases every client the container owns. Safe on a partially
// constructed container.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
