package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/veldbank/corebank/internal/adapter/http/dto"
)

func TestAtmOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("deposit credits the account", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		user := env.db.CreateTestUser(ctx, "atm1@example.com", "Atm One")
		account := env.db.CreateTestAccount(ctx, user.ID, "NL02VELD0000000001", decimal.NewFromInt(100))

		w := env.post(t, "/api/v1/atm/deposit", dto.AtmRequest{
			IBAN:   account.IBAN,
			Amount: decimal.NewFromInt(40),
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Type != "DEPOSIT" {
			t.Errorf("expected type DEPOSIT, got %s", resp.Type)
		}
		if resp.FromAccountID != resp.ToAccountID {
			t.Error("expected ATM transaction to reference one account on both sides")
		}

		after, _ := env.accountRepo.GetByID(ctx, account.ID)
		if !after.Balance.Equal(decimal.NewFromInt(140)) {
			t.Errorf("expected balance 140, got %s", after.Balance)
		}
	})

	t.Run("withdrawal records a negative amount", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		user := env.db.CreateTestUser(ctx, "atm2@example.com", "Atm Two")
		account := env.db.CreateTestAccount(ctx, user.ID, "NL02VELD0000000002", decimal.NewFromInt(100))

		w := env.post(t, "/api/v1/atm/withdraw", dto.AtmRequest{
			IBAN:   account.IBAN,
			Amount: decimal.NewFromInt(30),
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Type != "WITHDRAWAL" {
			t.Errorf("expected type WITHDRAWAL, got %s", resp.Type)
		}
		if !resp.Amount.Equal(decimal.NewFromInt(-30)) {
			t.Errorf("expected recorded amount -30, got %s", resp.Amount)
		}

		after, _ := env.accountRepo.GetByID(ctx, account.ID)
		if !after.Balance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected balance 70, got %s", after.Balance)
		}
	})

	t.Run("negative deposit behaves as withdrawal", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		user := env.db.CreateTestUser(ctx, "atm3@example.com", "Atm Three")
		account := env.db.CreateTestAccount(ctx, user.ID, "NL02VELD0000000003", decimal.NewFromInt(50))

		w := env.post(t, "/api/v1/atm/deposit", dto.AtmRequest{
			IBAN:   account.IBAN,
			Amount: decimal.NewFromInt(-20),
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Type != "WITHDRAWAL" {
			t.Errorf("expected negative deposit to record a WITHDRAWAL, got %s", resp.Type)
		}

		after, _ := env.accountRepo.GetByID(ctx, account.ID)
		if !after.Balance.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected balance 30, got %s", after.Balance)
		}
	})

	t.Run("reject withdrawal past zero", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		user := env.db.CreateTestUser(ctx, "atm4@example.com", "Atm Four")
		account := env.db.CreateTestAccount(ctx, user.ID, "NL02VELD0000000004", decimal.NewFromInt(10))

		w := env.post(t, "/api/v1/atm/withdraw", dto.AtmRequest{
			IBAN:   account.IBAN,
			Amount: decimal.NewFromInt(25),
		})

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status %d, got %d: %s", http.StatusUnprocessableEntity, w.Code, w.Body.String())
		}

		after, _ := env.accountRepo.GetByID(ctx, account.ID)
		if !after.Balance.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected balance unchanged, got %s", after.Balance)
		}
	})

	t.Run("reject zero amount", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		user := env.db.CreateTestUser(ctx, "atm5@example.com", "Atm Five")
		account := env.db.CreateTestAccount(ctx, user.ID, "NL02VELD0000000005", decimal.NewFromInt(10))

		w := env.post(t, "/api/v1/atm/deposit", dto.AtmRequest{
			IBAN:   account.IBAN,
			Amount: decimal.Zero,
		})

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})
}
