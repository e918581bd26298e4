package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"gold-ledger/internal/config"
	"gold-ledger/internal/dashboard"
	"gold-ledger/internal/database"
	"gold-ledger/internal/models"
	"gold-ledger/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startLedger(t *testing.T) (*config.Config, *database.DB) {
	t.Helper()

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "testing"},
		JWT: config.JWTConfig{
			AccessTokenDuration: time.Hour,
			PrivateKey:          privateKey,
			PublicKey:           publicKey,
			Issuer:              "gold-ledger-test",
			CookieName:          "access_token",
		},
		Security: config.SecurityConfig{
			BCryptCost:         bcrypt.MinCost,
			RateLimitPerSecond: 1000,
			RateLimitBurst:     1000,
			PasswordMinLength:  8,
		},
		Bootstrap: config.BootstrapConfig{
			AdminName:     "Console Admin",
			AdminEmail:    "console@ledger.example",
			AdminPassword: "console-pass-1",
		},
	}

	db := database.SetupTestDB(t)
	_, err = server.SeedAdmin(cfg, db, nil)
	require.NoError(t, err)

	api := httptest.NewServer(server.New(cfg, db, prometheus.NewRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil))).Handler())
	t.Cleanup(api.Close)

	cfg.Console = config.ConsoleConfig{
		APIBaseURL:     api.URL,
		PageSize:       10,
		RequestTimeout: 5 * time.Second,
		Email:          cfg.Bootstrap.AdminEmail,
		Password:       cfg.Bootstrap.AdminPassword,
	}
	return cfg, db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_Transactions(t *testing.T) {
	cfg, db := startLedger(t)
	customer := database.CreateTestCustomer(t, db, "Meena Iyer")
	database.CreateTestStore(t, db, "Main Street", 100, 1000000)

	tx := &models.Transaction{
		CustomerID:    customer.ID,
		StoreName:     "Main Street",
		Type:          models.TransactionTypeBuy,
		PaymentMethod: models.PaymentMethodUPI,
		GoldWeight:    decimal.NewFromInt(4),
		GoldPrice:     decimal.NewFromInt(6400),
		Description:   "bangle exchange",
	}
	require.NoError(t, db.Create(tx).Error)

	var out bytes.Buffer
	err := run(context.Background(), cfg, quietLogger(), []string{"transactions", "-type", "buy", "-search", "bangle"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Main Street")
	assert.Contains(t, out.String(), "25600.00")
	assert.Contains(t, out.String(), "page 1 of 1 (1 rows)")
}

func TestRun_StoresAndCustomers(t *testing.T) {
	cfg, db := startLedger(t)
	database.CreateTestStore(t, db, "Temple Road", 12, 50000)
	database.CreateTestCustomer(t, db, "Arjun Rao")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"stores"}, &out))
	assert.Contains(t, out.String(), "Temple Road")
	assert.Contains(t, out.String(), "12.000 g")

	out.Reset()
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"customers", "-size", "5"}, &out))
	assert.Contains(t, out.String(), "Arjun Rao")
}

func TestRun_Dashboard(t *testing.T) {
	cfg, _ := startLedger(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"dashboard"}, &out))

	assert.Contains(t, out.String(), "GOLD TAKEN")
	assert.NotContains(t, out.String(), "unavailable")
}

func TestRun_RejectsBadInput(t *testing.T) {
	cfg, _ := startLedger(t)

	err := run(context.Background(), cfg, quietLogger(), []string{"transactions", "-from", "31/01/2024"}, io.Discard)
	assert.ErrorContains(t, err, "invalid date")

	err = run(context.Background(), cfg, quietLogger(), []string{"reports"}, io.Discard)
	assert.ErrorContains(t, err, "unknown command")
	assert.ErrorIs(t, err, errUsage)

	err = run(context.Background(), cfg, quietLogger(), nil, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	cfg.Console.Password = "wrong-pass-1"
	err = run(context.Background(), cfg, quietLogger(), []string{"stores"}, io.Discard)
	assert.ErrorContains(t, err, "login failed")
}

func TestRun_RegisterThenWhoami(t *testing.T) {
	cfg, _ := startLedger(t)

	var out bytes.Buffer
	err := run(context.Background(), cfg, quietLogger(),
		[]string{"register", "-name", "Kavya Menon", "-email", "kavya@ledger.example", "-password", "kavya-pass-1"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "registered Kavya Menon <kavya@ledger.example>")

	cfg.Console.Email = "kavya@ledger.example"
	cfg.Console.Password = "kavya-pass-1"
	out.Reset()
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"whoami"}, &out))
	assert.Contains(t, out.String(), "Kavya Menon <kavya@ledger.example>")

	err = run(context.Background(), cfg, quietLogger(),
		[]string{"register", "-name", "Kavya Menon", "-email", "kavya@ledger.example", "-password", "kavya-pass-1"}, io.Discard)
	assert.Error(t, err)
}

func TestRun_CreateCommands(t *testing.T) {
	cfg, db := startLedger(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(),
		[]string{"create-customer", "-name", "Lakshmi Pillai", "-phone", "9123456780", "-address", "12 Temple Road"}, &out))
	assert.Contains(t, out.String(), "Lakshmi Pillai added")

	var customer models.Customer
	require.NoError(t, db.Where("name = ?", "Lakshmi Pillai").First(&customer).Error)

	out.Reset()
	require.NoError(t, run(context.Background(), cfg, quietLogger(),
		[]string{"create-store", "-name", "Harbour Road", "-gold", "50", "-cash", "400000"}, &out))
	assert.Contains(t, out.String(), "Harbour Road opened with 50.000 g and 400000.00 cash")

	out.Reset()
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{
		"create-transaction", "-customer", strconv.FormatUint(uint64(customer.ID), 10), "-store", "Harbour Road",
		"-type", "sell", "-payment", "cash", "-weight", "2", "-price", "6500", "-description", "chain",
	}, &out))
	assert.Contains(t, out.String(), "sell 2.000 g at 6500.00 by cash = 13000.00 (Harbour Road)")

	var store models.Store
	require.NoError(t, db.Where("name = ?", "Harbour Road").First(&store).Error)
	assert.Equal(t, "48.000", store.TotalGold.StringFixed(3))

	err := run(context.Background(), cfg, quietLogger(), []string{
		"create-transaction", "-customer", "1", "-store", "Harbour Road", "-type", "lend", "-payment", "cash", "-weight", "1", "-price", "1",
	}, io.Discard)
	assert.ErrorContains(t, err, "validation")
}

func TestRun_MetricsFlagPrintsConsoleCounters(t *testing.T) {
	cfg, db := startLedger(t)
	database.CreateTestStore(t, db, "Temple Road", 12, 50000)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"-metrics", "stores"}, &out))

	assert.Contains(t, out.String(), `ledger_console_list_queries_total{list="stores",status="success"} 1`)

	out.Reset()
	require.NoError(t, run(context.Background(), cfg, quietLogger(), []string{"stores"}, &out))
	assert.NotContains(t, out.String(), "ledger_console_list_queries_total")
}

func TestPrintDashboard_FailuresInWindowOrder(t *testing.T) {
	d := &dashboard.Dashboard{
		GoldSeries:   []models.WindowSample{{Label: "Week"}},
		AmountSeries: []models.WindowSample{{Label: "Week"}},
		Failures: map[string]error{
			"Month": errors.New("timeout"),
			"Today": errors.New("refused"),
		},
	}

	for i := 0; i < 10; i++ {
		var out bytes.Buffer
		printDashboard(&out, d)

		today := strings.Index(out.String(), "Today unavailable: refused")
		month := strings.Index(out.String(), "Month unavailable: timeout")
		require.NotEqual(t, -1, today)
		require.NotEqual(t, -1, month)
		assert.Less(t, today, month)
	}
}
