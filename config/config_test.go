package config

import (
	"os"
	"testing"
	"time"
)

// TestLoad 测试加载配置文件
func TestLoad(t *testing.T) {
	cfg, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	// 验证服务器配置
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host 期望 '0.0.0.0', 实际 '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port 期望 8080, 实际 %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("Server.Mode 期望 'debug', 实际 '%s'", cfg.Server.Mode)
	}

	// 验证数据库配置
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver 期望 'mysql', 实际 '%s'", cfg.Database.Driver)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port 期望 3306, 实际 %d", cfg.Database.Port)
	}
	if cfg.Database.Database != "chirper" {
		t.Errorf("Database.Database 期望 'chirper', 实际 '%s'", cfg.Database.Database)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("Database.MaxOpenConns 期望 50, 实际 %d", cfg.Database.MaxOpenConns)
	}

	// 验证Redis配置
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port 期望 6379, 实际 %d", cfg.Redis.Port)
	}
	if cfg.Redis.PoolSize != 10 {
		t.Errorf("Redis.PoolSize 期望 10, 实际 %d", cfg.Redis.PoolSize)
	}

	// 验证Session配置
	if cfg.Session.GetTTL() != 2*time.Hour {
		t.Errorf("Session.TTL 期望 2h, 实际 %v", cfg.Session.GetTTL())
	}
	if cfg.Session.GetCookieName() != "auth_token" {
		t.Errorf("Session.CookieName 期望 'auth_token', 实际 '%s'", cfg.Session.GetCookieName())
	}

	if cfg.Snowflake.MachineID != 1 {
		t.Errorf("Snowflake.MachineID 期望 1, 实际 %d", cfg.Snowflake.MachineID)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level 期望 'info', 实际 '%s'", cfg.Log.Level)
	}
}

// TestLoadFileNotExist 测试加载不存在的配置文件
func TestLoadFileNotExist(t *testing.T) {
	_, err := Load("not_exist.yaml")
	if err == nil {
		t.Error("期望返回错误，但没有返回")
	}
}

// TestLoadInvalidYAML 测试加载无效的YAML文件
func TestLoadInvalidYAML(t *testing.T) {
	invalidYAML := `
server:
  host: "localhost"
  port: invalid_port
`
	tmpFile, err := os.CreateTemp("", "invalid_*.yaml")
	if err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(invalidYAML); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Error("期望返回错误，但没有返回")
	}
}

// TestDatabaseGetDSN 测试各驱动的DSN
func TestDatabaseGetDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name: "mysql",
			cfg: DatabaseConfig{
				Driver:    "mysql",
				Host:      "127.0.0.1",
				Port:      3306,
				Username:  "root",
				Password:  "root",
				Database:  "chirper",
				Charset:   "utf8mb4",
				ParseTime: true,
				Loc:       "UTC",
			},
			expected: "root:root@tcp(127.0.0.1:3306)/chirper?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "postgres",
			cfg: DatabaseConfig{
				Driver:   "postgres",
				Host:     "db",
				Port:     5432,
				Username: "chirper",
				Password: "secret",
				Database: "chirper",
			},
			expected: "host=db port=5432 user=chirper password=secret dbname=chirper sslmode=disable",
		},
		{
			name: "pgx with ssl",
			cfg: DatabaseConfig{
				Driver:   "pgx",
				Host:     "db",
				Port:     5432,
				Username: "chirper",
				Password: "secret",
				Database: "chirper",
				SSLMode:  "require",
			},
			expected: "host=db port=5432 user=chirper password=secret dbname=chirper sslmode=require",
		},
		{
			name:     "sqlite",
			cfg:      DatabaseConfig{Driver: "sqlite", Database: "chirp.db"},
			expected: "chirp.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := tt.cfg.GetDSN(); actual != tt.expected {
				t.Errorf("DSN不匹配\n期望: %s\n实际: %s", tt.expected, actual)
			}
		})
	}
}

// TestRedisGetAddr 测试获取Redis地址
func TestRedisGetAddr(t *testing.T) {
	redisConfig := RedisConfig{
		Host: "127.0.0.1",
		Port: 6379,
	}

	if actual := redisConfig.GetAddr(); actual != "127.0.0.1:6379" {
		t.Errorf("Redis地址不匹配\n期望: %s\n实际: %s", "127.0.0.1:6379", actual)
	}
}

// TestRedisGetTimeouts 测试获取Redis超时配置
func TestRedisGetTimeouts(t *testing.T) {
	redisConfig := RedisConfig{
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	if d := redisConfig.GetDialTimeout(); d != 5*time.Second {
		t.Errorf("DialTimeout 期望 5s, 实际 %v", d)
	}
	if d := redisConfig.GetReadTimeout(); d != 3*time.Second {
		t.Errorf("ReadTimeout 期望 3s, 实际 %v", d)
	}
	if d := redisConfig.GetWriteTimeout(); d != 3*time.Second {
		t.Errorf("WriteTimeout 期望 3s, 实际 %v", d)
	}
}

// TestSessionDefaults 测试Session默认值
func TestSessionDefaults(t *testing.T) {
	var s SessionConfig
	if s.GetTTL() != 2*time.Hour {
		t.Errorf("默认TTL 期望 2h, 实际 %v", s.GetTTL())
	}
	if s.GetCookieName() != "auth_token" {
		t.Errorf("默认CookieName 期望 'auth_token', 实际 '%s'", s.GetCookieName())
	}
	if s.GetStore() != "redis" {
		t.Errorf("默认Store 期望 'redis', 实际 '%s'", s.GetStore())
	}
}

// TestSessionSecret 测试 flash 签名密钥
func TestSessionSecret(t *testing.T) {
	var s SessionConfig
	if s.GetSecret() != nil {
		t.Errorf("未配置时 GetSecret 期望 nil, 实际 %q", s.GetSecret())
	}

	cfg, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if string(cfg.Session.GetSecret()) != "change-me-in-production" {
		t.Errorf("Session.Secret 不正确: %q", cfg.Session.GetSecret())
	}
}

// BenchmarkGetDSN 性能测试：获取DSN
func BenchmarkGetDSN(b *testing.B) {
	dbConfig := DatabaseConfig{
		Driver:    "mysql",
		Host:      "127.0.0.1",
		Port:      3306,
		Username:  "root",
		Password:  "root",
		Database:  "chirper",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "UTC",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dbConfig.GetDSN()
	}
}
