package main

import (
	"time"

	"github.com/dmitrymomot/todo/pkg/cookie"
	"github.com/dmitrymomot/todo/pkg/db"
	"github.com/dmitrymomot/todo/pkg/logger"
	"github.com/dmitrymomot/todo/pkg/session"
	"github.com/dmitrymomot/todo/pkg/token"
)

// Config is the full process configuration.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	BodyLimit       int64         `env:"HTTP_BODY_LIMIT" envDefault:"10485760"`
	PasswordCost    int           `env:"PASSWORD_BCRYPT_COST" envDefault:"0"`

	Log     logger.Config
	Token   token.Config
	Session session.Config
	Cookie  cookie.Config
	DB      db.Config
}
