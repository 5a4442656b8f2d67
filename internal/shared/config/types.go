package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	// NotifyAddress receives vendor decision notifications. Empty disables
	// the mailer.
	NotifyAddress string `mapstructure:"notify_address"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type GeocoderConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
	UserAgent string `mapstructure:"user_agent"`
}

// VendorConfig carries vendor participation policy.
//
// RequireApproval is authoritative. AllowAutoApproval is a deprecated flag from
// an earlier config generation and is only consulted when RequireApproval is
// absent from the config file; it then resolves to its negation. Callers must
// use ApprovalRequired() and never read the raw flags.
type VendorConfig struct {
	RequireApproval   *bool `mapstructure:"require_approval"`
	AllowAutoApproval *bool `mapstructure:"allow_auto_approval"`
}

// ApprovalRequired resolves the approval policy to a single boolean.
func (v *VendorConfig) ApprovalRequired() bool {
	if v.RequireApproval != nil {
		return *v.RequireApproval
	}
	if v.AllowAutoApproval != nil {
		return !*v.AllowAutoApproval
	}
	return true
}

type RateLimitConfig struct {
	SessionStartPerMinute int `mapstructure:"session_start_per_minute"`
	SessionStartPerHour   int `mapstructure:"session_start_per_hour"`
}
