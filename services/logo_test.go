package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"
)

func TestFileLogo(t *testing.T) {
	fsys := fstest.MapFS{
		"j3m_logo.png": &fstest.MapFile{Data: []byte("png-bytes")},
	}

	tests := []struct {
		name    string
		logo    FileLogo
		want    string
		wantErr bool
	}{
		{"present", FileLogo{FS: fsys, Path: "j3m_logo.png"}, "png-bytes", false},
		{"missing file", FileLogo{FS: fsys, Path: "other.png"}, "", true},
		{"no filesystem", FileLogo{Path: "j3m_logo.png"}, "", true},
		{"no path", FileLogo{FS: fsys}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.logo.Logo(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrLogoUnavailable) {
					t.Errorf("error = %v, want ErrLogoUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Logo() error = %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Logo() = %q, want %q", b, tt.want)
			}
		})
	}
}

func TestHTTPLogo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("remote-logo"))
	}))
	defer srv.Close()

	b, err := HTTPLogo{URL: srv.URL + "/logo.png"}.Logo(context.Background())
	if err != nil {
		t.Fatalf("Logo() error = %v", err)
	}
	if string(b) != "remote-logo" {
		t.Errorf("Logo() = %q", b)
	}

	_, err = HTTPLogo{URL: srv.URL + "/missing.png", Client: srv.Client()}.Logo(context.Background())
	if !errors.Is(err, ErrLogoUnavailable) {
		t.Errorf("404 error = %v, want ErrLogoUnavailable", err)
	}
}

func TestCachedLogo_CachesSuccess(t *testing.T) {
	src := &staticLogo{b: []byte("logo")}
	cached := NewCachedLogo(src, time.Minute)

	for i := 0; i < 3; i++ {
		b, err := cached.Logo(context.Background())
		if err != nil || string(b) != "logo" {
			t.Fatalf("call %d: Logo() = %q, %v", i, b, err)
		}
	}
	if src.count() != 1 {
		t.Errorf("source called %d times, want 1", src.count())
	}
}

func TestCachedLogo_DoesNotCacheFailure(t *testing.T) {
	src := &staticLogo{err: ErrLogoUnavailable}
	cached := NewCachedLogo(src, time.Minute)

	if _, err := cached.Logo(context.Background()); err == nil {
		t.Fatal("expected first call to fail")
	}

	src.mu.Lock()
	src.err = nil
	src.b = []byte("logo")
	src.mu.Unlock()

	b, err := cached.Logo(context.Background())
	if err != nil || string(b) != "logo" {
		t.Fatalf("Logo() after recovery = %q, %v", b, err)
	}
	if src.count() != 2 {
		t.Errorf("source called %d times, want 2", src.count())
	}
}

func TestLoadLogo(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		if _, err := loadLogo(context.Background(), nil, time.Second); !errors.Is(err, ErrLogoUnavailable) {
			t.Errorf("error = %v, want ErrLogoUnavailable", err)
		}
	})

	t.Run("returns bytes", func(t *testing.T) {
		b, err := loadLogo(context.Background(), &staticLogo{b: []byte("x")}, time.Second)
		if err != nil || string(b) != "x" {
			t.Errorf("loadLogo() = %q, %v", b, err)
		}
	})

	t.Run("times out on a stuck source", func(t *testing.T) {
		src := blockingLogo{release: make(chan struct{})}
		defer close(src.release)

		start := time.Now()
		_, err := loadLogo(context.Background(), src, 10*time.Millisecond)
		if !errors.Is(err, ErrLogoUnavailable) {
			t.Errorf("error = %v, want ErrLogoUnavailable", err)
		}
		if time.Since(start) > time.Second {
			t.Error("loadLogo blocked past its timeout")
		}
	})
}
