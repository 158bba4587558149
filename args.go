package main

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gavel/api"
)

func ParseArgs() Args {
	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")
	pflag.String("templates-glob", "templates/*.html", "")

	// db config
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-database", "", "")
	pflag.String("db-schema", "public", "")

	// s3 config (optional, listing images)
	pflag.String("s3-endpoint", "", "")
	pflag.String("s3-bucket", "", "")
	pflag.String("s3-public-base-url", "", "")
	pflag.String("s3-access-key-id", "", "")
	pflag.String("s3-secret-access-key", "", "")
	pflag.Int64("s3-rate-limit-per-hour", 30, "")

	// redis config (optional, session store)
	pflag.String("redis-addr", "", "")
	pflag.String("redis-password", "", "")
	pflag.Int("redis-db", 0, "")
	pflag.String("redis-key-prefix", "gavel:", "")

	// session config
	pflag.String("session-cookie-key", "session", "")
	pflag.Duration("session-cookie-max-age", 24*time.Hour, "")
	pflag.Bool("session-cookie-secure", true, "")

	// bind pflag to viper; a local .env is loaded first when present
	_ = godotenv.Load()
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("GAVEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return Args{
		ServerURL:     viper.GetString("server-url"),
		TemplatesGlob: viper.GetString("templates-glob"),
		ServerConfig: api.ServerConfig{
			DB: api.DBConfig{
				User:     viper.GetString("db-user"),
				Password: viper.GetString("db-password"),
				Host:     viper.GetString("db-host"),
				Port:     viper.GetInt("db-port"),
				Database: viper.GetString("db-database"),
				Schema:   viper.GetString("db-schema"),
			},
			S3: api.S3Config{
				Endpoint:         viper.GetString("s3-endpoint"),
				Bucket:           viper.GetString("s3-bucket"),
				PublicBaseURL:    viper.GetString("s3-public-base-url"),
				AccessKeyID:      viper.GetString("s3-access-key-id"),
				SecretAccessKey:  viper.GetString("s3-secret-access-key"),
				RateLimitPerHour: viper.GetInt64("s3-rate-limit-per-hour"),
			},
			Redis: api.RedisConfig{
				Addr:      viper.GetString("redis-addr"),
				Password:  viper.GetString("redis-password"),
				DB:        viper.GetInt("redis-db"),
				KeyPrefix: viper.GetString("redis-key-prefix"),
			},
			Session: api.SessionConfig{
				KeyForCookie: viper.GetString("session-cookie-key"),
				CookieMaxAge: viper.GetDuration("session-cookie-max-age"),
				CookieSecure: viper.GetBool("session-cookie-secure"),
			},
		},
	}
}

type Args struct {
	ServerURL     string
	TemplatesGlob string
	ServerConfig  api.ServerConfig
}

func (args Args) Validate() bool {
	return args.ServerURL != "" &&
		args.TemplatesGlob != "" &&
		args.ServerConfig.DB.Host != "" &&
		args.ServerConfig.DB.User != "" &&
		args.ServerConfig.DB.Database != ""
}
