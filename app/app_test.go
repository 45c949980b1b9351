package app

import (
	"context"
	"os"
	"testing"
	"time"

	"go-atm/logger"
	"go-atm/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestReapSessions(t *testing.T) {
	cfg := service.DefaultDirectoryConfig()
	cfg.SessionTTL = time.Millisecond
	directory := service.NewInMemoryDirectory(cfg)
	_, err := directory.ProvisionAccount("1234567890123456", "1234", decimal.NewFromInt(10))
	require.NoError(t, err)
	session, err := directory.StartSession("1234567890123456")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		reapSessions(ctx, directory, 5*time.Millisecond)
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return !session.Active() }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}
