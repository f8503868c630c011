package storage

import (
	"context"
	"strings"
	"testing"
)

func stubFactory(ctx context.Context, cfg Config) (*Store, error) {
	return nil, nil
}

func TestRegisterAndOpenUnknownKind(t *testing.T) {
	t.Parallel()

	if Registered("nope") {
		t.Fatal("kind nope reported as registered")
	}
	_, err := Open(context.Background(), Config{Kind: "nope", DSN: "x"})
	if err == nil || !strings.Contains(err.Error(), "unsupported storage.kind") {
		t.Errorf("open unknown kind: %v", err)
	}

	_, err = Open(context.Background(), Config{DSN: "x"})
	if err == nil || !strings.Contains(err.Error(), "missing kind") {
		t.Errorf("open without kind: %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	Register("storagetest-dup", stubFactory)
	if !Registered("storagetest-dup") {
		t.Fatal("registered kind not reported")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("storagetest-dup", stubFactory)
}

func TestRegisterRejectsEmptyKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty-kind Register did not panic")
		}
	}()
	Register("", stubFactory)
}

func TestRegisterRejectsNilFactory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil-factory Register did not panic")
		}
	}()
	Register("storagetest-nil", nil)
}
