package internal

import "time"

type Config struct {
	BaseDir         string        `env:"CHATROOM_BASE_DIR,default=/tmp"`
	DeliveryTimeout time.Duration `env:"CHATROOM_DELIVERY_TIMEOUT,default=2s"`
	MaxBodyLength   int           `env:"CHATROOM_MAX_BODY_LENGTH,default=1024"`
	RestartInterval time.Duration `env:"CHATROOM_RESTART_INTERVAL,default=200ms"`
	LogLevel        string        `env:"CHATROOM_LOG_LEVEL,default=INFO"`
}
