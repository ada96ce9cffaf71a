package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

type fakeTx struct {
	pgx.Tx
}

type fakeBeginner struct {
	tx  pgx.Tx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	return b.tx, b.err
}

func TestWithTx_CarriesTransaction(t *testing.T) {
	want := &fakeTx{}
	ctx, tx, err := WithTx(context.Background(), &fakeBeginner{tx: want})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx != pgx.Tx(want) {
		t.Error("returned transaction differs from the one begun")
	}
	if TxFromContext(ctx) != pgx.Tx(want) {
		t.Error("context does not carry the transaction")
	}
}

func TestWithTx_BeginError(t *testing.T) {
	_, tx, err := WithTx(context.Background(), &fakeBeginner{err: fmt.Errorf("pool closed")})
	if err == nil {
		t.Fatal("expected error")
	}
	if tx != nil {
		t.Errorf("tx = %v, want nil", tx)
	}
}

func TestTxFromContext_Absent(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("tx = %v, want nil on a plain context", tx)
	}
}
