package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeTx struct {
	TxRunner
	opened int
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.opened++
	return fn(f)
}

func TestWithBeginHooks_RunInOrderBeforeFn(t *testing.T) {
	inner := &fakeTx{}
	var calls []string
	hook := func(name string) BeginHook {
		return func(context.Context, Queryer) error { calls = append(calls, name); return nil }
	}

	db := WithBeginHooks(inner, hook("lock_timeout"), hook("search_path"))
	err := WithTx(context.Background(), db, func(Queryer) error {
		calls = append(calls, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if got := strings.Join(calls, ","); got != "lock_timeout,search_path,fn" || inner.opened != 1 {
		t.Fatalf("calls=%s opened=%d", got, inner.opened)
	}
}

func TestWithBeginHooks_HookErrorSkipsFn(t *testing.T) {
	boom := errors.New("boom")
	db := WithBeginHooks(&fakeTx{}, func(context.Context, Queryer) error { return boom })

	ran := false
	err := db.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	var sawDeadline bool
	MustGuard(context.Background(), guardFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	}))
	if !sawDeadline {
		t.Fatal("guard should run under a default deadline")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when a seam is down")
		}
	}()
	MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg down") }))
}
