package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirper/config"
	"chirper/internal/dto"
	"chirper/internal/service"
	"chirper/pkg/container"
)

// writeConfig 生成使用临时 SQLite 文件与进程内会话的配置
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`database:
  driver: sqlite
  database: %q
session:
  store: memory
snowflake:
  machine_id: 1
log:
  level: fatal
`, filepath.Join(dir, "chirper.db"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPromptPassword_Piped(t *testing.T) {
	var out bytes.Buffer

	password, err := promptPassword(&out, strings.NewReader("s3cret\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
	assert.Empty(t, out.String(), "非终端输入不打印提示")

	password, err = promptPassword(&out, strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", password)
}

func TestUsersAdd(t *testing.T) {
	cfgPath := writeConfig(t)

	_, err := run(t, "", "migrate", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "pw1\n", "users", "add", "alice", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "User 'alice' created")

	_, err = run(t, "other\n", "users", "add", "alice", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user already exists")

	_, err = run(t, "\n", "users", "add", "bob", "--config", cfgPath)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSeed(t *testing.T) {
	cfgPath := writeConfig(t)
	_, err := run(t, "", "migrate", "--config", cfgPath)
	require.NoError(t, err)

	_, err = run(t, "", "seed", "--users", "3", "--chirps", "7", "--workers", "2", "--config", cfgPath)
	require.NoError(t, err)

	// 再次执行：用户已存在全部跳过，不重复发 chirp
	_, err = run(t, "", "seed", "--users", "3", "--chirps", "7", "--workers", "2", "--config", cfgPath)
	require.NoError(t, err)

	// 直接通过容器校验数据
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.NoError(t, container.Init(cfg))
	t.Cleanup(container.Close)

	err = container.Invoke(func(auth service.AuthService, chirps service.ChirpService) error {
		session, err := auth.Authenticate(context.Background(), &dto.LoginDTO{Username: "user0002", Password: DefaultSeedPassword})
		require.NoError(t, err)
		assert.Equal(t, "user0002", session.Username)

		timeline, err := chirps.ListTimeline(context.Background())
		require.NoError(t, err)
		assert.Len(t, timeline, 7)
		return nil
	})
	require.NoError(t, err)
}

func TestSeed_InvalidFlags(t *testing.T) {
	cfgPath := writeConfig(t)
	_, err := run(t, "", "seed", "--users", "0", "--config", cfgPath)
	assert.Error(t, err)

	// 还原默认值，避免影响其他用例
	seedUsers, seedChirps, seedWorkers = 10, 100, 4
}
