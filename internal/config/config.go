package config

import (
	"flag"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	RepositoryMemory   = "memory"
	RepositoryDatabase = "database"
)

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-required:"true"`
	Repository    string `yaml:"repository" env:"REPOSITORY" env-default:"memory"`
	DataPath      string `yaml:"data_path" env:"DATA_PATH" env-required:"true"`
	HashPasswords bool   `yaml:"hash_passwords" env:"HASH_PASSWORDS" env-default:"false"`
	Database      `yaml:"database"`
	HTTPServer    `yaml:"http_server"`
}

type Database struct {
	Host       string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port       int    `yaml:"port" env:"PORT" env-default:"3306"`
	UsernameDB string `yaml:"username-db" env:"USERNAMEDB"`
	Password   string `yaml:"password" env:"PASSWORD"`
	DBName     string `yaml:"dbname" env:"DBNAME" env-default:"games"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := flag.String("config", "", "path to config yaml file")
	flag.Parse()

	cfg, err := Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Load reads the YAML file at path. Variables from a .env file in the working
// directory are exported first so they can override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, errConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: path, Err: os.ErrNotExist}
	}

	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Repository != RepositoryMemory && cfg.Repository != RepositoryDatabase {
		return nil, &invalidValueError{key: "repository", value: cfg.Repository}
	}

	return &cfg, nil
}

func (cfg *Database) GetDSN() string {
	c := mysql.NewConfig()
	c.User = cfg.UsernameDB
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}

	return c.FormatDSN()
}
