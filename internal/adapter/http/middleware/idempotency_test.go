package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func TestIdempotencyMiddleware_PassesThroughWithoutKey(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted without a key")
			return false, nil, nil
		},
	}

	handlerCalled := false
	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !handlerCalled {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingMethods(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted for GET requests")
			return false, nil, nil
		},
	}

	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/payments/pay-1", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	stored := []byte(`{"id":"pay-1"}`)
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return true, stored, nil
		},
	}

	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run on replay")
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Body.String() != string(stored) {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header to be set")
	}
}

func TestIdempotencyMiddleware_InProgressMarkerRunsHandler(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return true, []byte("processing"), nil
		},
	}

	handlerCalled := false
	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !handlerCalled {
		t.Fatal("expected handler to run while first request is in flight")
	}
}

func TestIdempotencyMiddleware_StoreErrorReturns500(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return false, nil, errors.New("redis down")
		},
	}

	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run when the store fails")
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	var updatedWith []byte
	store := &fakeIdempotencyStore{
		updateFn: func(_ context.Context, _ string, response []byte, _ time.Duration) error {
			updatedWith = response
			return nil
		},
	}

	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pay-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if string(updatedWith) != `{"id":"pay-1"}` {
		t.Fatalf("expected successful response to be stored, got %q", updatedWith)
	}
}

func TestIdempotencyMiddleware_DoesNotStoreFailedResponse(t *testing.T) {
	store := &fakeIdempotencyStore{
		updateFn: func(context.Context, string, []byte, time.Duration) error {
			t.Fatal("failed responses must not be cached")
			return nil
		},
	}

	h := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
