package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/testhelper"
)

func wordExists(t *testing.T, pool *pgxpool.Pool, word string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM words WHERE word = $1)`, word,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("wordExists query: %v", err)
	}
	return exists
}

func insertWord(ctx context.Context, q postgres.Querier, word string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO words (word, word_normalized) VALUES ($1, $1)`, word)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	word := "commit-" + testhelper.UniqueSuffix()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertWord(ctx, postgres.QuerierFromCtx(ctx, pool), word)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, word) {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	word := "rollback-" + testhelper.UniqueSuffix()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertWord(ctx, postgres.QuerierFromCtx(ctx, pool), word); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if wordExists(t, pool, word) {
		t.Fatal("expected word NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	word := "panic-" + testhelper.UniqueSuffix()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if wordExists(t, pool, word) {
			t.Fatal("expected word NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertWord(ctx, postgres.QuerierFromCtx(ctx, pool), word); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	word := "ctx-" + testhelper.UniqueSuffix()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Fatal("expected InTx to report the transaction")
		}
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertWord(ctx, q, word); err != nil {
			return err
		}

		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM words WHERE word = $1)`, word).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected word to be visible within the transaction")
		}
		if wordExists(t, pool, word) {
			t.Fatal("expected word to be invisible outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, word) {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_CanceledContextStillRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	word := "cancel-" + testhelper.UniqueSuffix()

	ctx, cancel := context.WithCancel(context.Background())
	err := tm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := insertWord(txCtx, postgres.QuerierFromCtx(txCtx, pool), word); err != nil {
			return err
		}
		cancel()
		return txCtx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if wordExists(t, pool, word) {
		t.Fatal("expected word NOT to exist after canceled transaction")
	}
	if stat := pool.Stat(); stat.AcquiredConns() != 0 {
		t.Fatalf("expected no leaked connections, got %d acquired", stat.AcquiredConns())
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	outer := "outer-" + testhelper.UniqueSuffix()
	inner := "inner-" + testhelper.UniqueSuffix()
	sentinel := errors.New("outer fails after inner succeeded")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertWord(ctx, postgres.QuerierFromCtx(ctx, pool), outer); err != nil {
			return err
		}
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertWord(ctx, postgres.QuerierFromCtx(ctx, pool), inner)
		}); err != nil {
			return err
		}
		if wordExists(t, pool, inner) {
			t.Error("inner write must not commit before the outer transaction")
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if wordExists(t, pool, outer) || wordExists(t, pool, inner) {
		t.Fatal("expected both writes to roll back with the outer transaction")
	}
}
