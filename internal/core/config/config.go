package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
	// File 非空时同时写文件并按大小切割
	File       string
	MaxSizeMB  int `mapstructure:"maxSizeMb"`
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Mail SMTP 外发配置；凭证只允许来自配置/环境，不写死在代码里
type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Storage 对象存储（minio / S3 兼容），承载上传的商品图片
type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string `mapstructure:"publicUrl"` // 外部可访问的基地址
}

// Queue 注册欢迎邮件异步任务用的 redis stream
type Queue struct {
	Stream      string
	Group       string
	Concurrency int
}

type Book struct {
	// 创建前校验要拒绝的书名（历史哨兵值）
	ForbiddenNames []string `mapstructure:"forbiddenNames"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Mail    Mail
	Storage Storage
	Queue   Queue
	Book    Book
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("queue.stream", "mail:welcome")
	v.SetDefault("queue.group", "mailer")
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("book.forbiddenNames", []string{"book1"})

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
