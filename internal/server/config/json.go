package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/medapp/internal/flagx"
	"github.com/dmitrijs2005/medapp/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP         string         `json:"endpoint_addr_http"`
	DatabaseDSN              string         `json:"database_dsn"`
	SecretKey                string         `json:"secret_key"`
	TokenValidityDuration    timex.Duration `json:"token_validity_duration"`
	DefaultRoleID            int64          `json:"default_role_id"`
	DefaultAppointmentStatus *int64         `json:"default_appointment_status"`
	LogLevel                 string         `json:"log_level"`
	S3RootUser               string         `json:"s3_root_user"`
	S3RootPassword           string         `json:"s3_root_password"`
	S3Bucket                 string         `json:"s3_bucket"`
	S3Region                 string         `json:"s3_region"`
	S3BaseEndpoint           string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config onto
// config. Keys that are absent (zero) in the file leave config untouched,
// except default_appointment_status where an explicit 0 means "leave unset".
// No flag means no file; an unreadable or invalid file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.DefaultRoleID != 0 {
		config.DefaultRoleID = c.DefaultRoleID
	}
	if c.DefaultAppointmentStatus != nil {
		config.DefaultAppointmentStatus = *c.DefaultAppointmentStatus
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
