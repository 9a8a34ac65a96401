package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/mealplanner.yaml"

const envPrefix = "MEALPLANNER_"

type Application struct {
	Database Database `koanf:"db"`
	Export   Export   `koanf:"export"`
	Server   Server   `koanf:"server"`
}

type Database struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// Path is the SQLite database file. Only used by the sqlite driver.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Export struct {
	// Driver is either "fs" or "s3".
	Driver string `koanf:"driver"`
	// Dir is the base directory for relative shopping list file names.
	Dir string `koanf:"dir"`
	S3  S3     `koanf:"s3"`
}

type S3 struct {
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	Endpoint  string `koanf:"endpoint"`
	Prefix    string `koanf:"prefix"`
	PathStyle bool   `koanf:"pathstyle"`
	// AccessKey and SecretKey are optional; without them the default AWS credential chain is used.
	AccessKey string `koanf:"accesskey"`
	SecretKey string `koanf:"secretkey"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

func defaults() Application {
	return Application{
		Database: Database{
			Driver: "sqlite",
			Path:   "./data/meals.db",
			Host:   "localhost",
			Port:   5432,
			User:   "postgres",
			Pass:   "",
			Name:   "meals_db",
			Schema: "public",
		},
		Export: Export{
			Driver: "fs",
			Dir:    ".",
			S3: S3{
				Region: "us-east-1",
			},
		},
		Server: Server{
			Addr: ":8181",
		},
	}
}

// Load layers the built-in defaults, the YAML file at path (if present) and
// MEALPLANNER_* environment variables, in that order.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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

	return app, nil
}
