package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// Application is the full bot configuration. Values are layered: struct
// defaults, then the yaml file at the given path, then MONET_ environment
// variables.
type Application struct {
	Telegram Telegram `koanf:"telegram"`
	Backend  Backend  `koanf:"backend"`
	Prefs    Prefs    `koanf:"prefs"`
	Digest   Digest   `koanf:"digest"`
}

type Telegram struct {
	Token string `koanf:"token"`
}

type Backend struct {
	URL      string `koanf:"url"`
	Email    string `koanf:"email"`
	Password string `koanf:"password"`
	// TimeoutSeconds bounds every backend request.
	TimeoutSeconds int `koanf:"timeoutseconds"`
}

type Prefs struct {
	Path string `koanf:"path"`
}

// Digest configures the scheduled daily summary message. ChatID zero
// disables it.
type Digest struct {
	Schedule string `koanf:"schedule"`
	ChatID   int64  `koanf:"chatid"`
}

func Load(path string) (Application, error) {
	// A local .env is a convenience for development, its absence is fine.
	_ = godotenv.Load()

	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Backend: Backend{
			URL:            "http://localhost:5000",
			TimeoutSeconds: 15,
		},
		Prefs: Prefs{
			Path: "monet-prefs.yaml",
		},
		Digest: Digest{
			Schedule: "0 9 * * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "MONET_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "MONET_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (a Application) validate() error {
	if a.Telegram.Token == "" {
		return errors.New("telegram token is not set")
	}
	if a.Backend.Email == "" || a.Backend.Password == "" {
		return errors.New("backend credentials are not set")
	}
	return nil
}
