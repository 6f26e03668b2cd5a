// Package config is the glue for all configuration sections, loaded once at
// startup from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type ConfigStruct struct {
	Common   CommonConf   `toml:"common"`
	Server   ServerConf   `toml:"server"`
	Database DatabaseConf `toml:"database"`
}

// CommonConf is the data required for all services
type CommonConf struct {
	LogDir string `toml:"log_dir"`
	Debug  bool   `toml:"debug"`
}

type ServerConf struct {
	ListenAddr string `toml:"listen_addr"`
	// HostURL is the canonical public URL, used for redirects and cookies
	HostURL string `toml:"host_url"`
}

// DatabaseConf is the data required to establish a PostgreSQL connection
type DatabaseConf struct {
	DBname  string `toml:"dbname"`
	Host    string `toml:"host"`
	SSLmode string `toml:"sslmode"`
	User    string `toml:"user"`
}

// String returns a DSN with all information from the struct
func (d DatabaseConf) String() string {
	return fmt.Sprintf("sslmode=%s host=%s user=%s dbname=%s", d.SSLmode, d.Host, d.User, d.DBname)
}

var (
	Common   CommonConf
	Server   ServerConf
	Database DatabaseConf
)

func spec() ConfigStruct {
	return ConfigStruct{
		Common:   Common,
		Server:   Server,
		Database: Database,
	}
}

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	var c ConfigStruct
	if err := toml.Unmarshal(data, &c); err != nil {
		return err
	}
	Common = c.Common
	Server = c.Server
	Database = c.Database

	if Server.ListenAddr == "" {
		Server.ListenAddr = "localhost:8080"
	}
	if Server.HostURL == "" {
		Server.HostURL = "http://" + Server.ListenAddr
	}
	return nil
}

// Save writes the current configuration back to path, for first-run
// bootstrapping with the defaults filled in.
func Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(spec())
}
