package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"recipe"`
	DBPath     string `env:"DBPath" envDefault:"datas/recipe.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// 启动前等待数据库可用的重试间隔
	DBWaitInterval time.Duration `env:"DB_WAIT_INTERVAL" envDefault:"1s"`

	// 认证
	TokenHeader       string        `env:"TOKEN_HEADER" envDefault:"Authorization"`
	MinPasswordLength int           `env:"MIN_PASSWORD_LENGTH" envDefault:"5"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`

	// 可选：启动时确保存在的超级用户
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if Conf.MinPasswordLength <= 0 {
		Conf.MinPasswordLength = 5
	}
	if Conf.RequestTimeout <= 0 {
		Conf.RequestTimeout = 5 * time.Second
	}
	logrus.Debugf("%+v\n", Conf.redacted())
	return Conf, nil
}

// redacted 返回隐藏敏感字段后的副本，用于调试日志
func (c Config) redacted() Config {
	if c.DBPassword != "" {
		c.DBPassword = "***"
	}
	if c.AdminPassword != "" {
		c.AdminPassword = "***"
	}
	if c.DSNURL != "" {
		c.DSNURL = "***"
	}
	return c
}
