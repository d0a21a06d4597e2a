package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestHistoryCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "[1] 2026-03-02 10:30 (detail)")
	assert.Contains(t, output, "Q: how long were the skid marks?")
	assert.Contains(t, output, "A: The skid marks measured 18 metres.")
}

func TestHistoryCmd_LimitForwarded(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var gotLimit int
	askService = &MockAskService{
		ExchangesFunc: func(ctx context.Context, limit int) ([]domain.Exchange, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "-n", "3"})
	defer func() {
		rootCmd.SetArgs(nil)
		historyLimit = 10
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 3, gotLimit)
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &MockAskService{
		ExchangesFunc: func(ctx context.Context, limit int) ([]domain.Exchange, error) {
			return nil, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No questions asked yet.")
}

func TestHistoryCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		historyJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "\"Question\"")
	assert.Contains(t, output, "\"Answer\"")
}

func TestHistoryCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &MockAskService{
		ExchangesFunc: func(ctx context.Context, limit int) ([]domain.Exchange, error) {
			return nil, errors.New("db locked")
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load history")
}
