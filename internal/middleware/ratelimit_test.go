package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.GET("/", rl.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("primeira requisição: status %d", code)
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("segunda requisição: status %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("terceira requisição deveria estourar o limite: status %d", code)
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 1)
	r := gin.New()
	r.GET("/", rl.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("primeiro IP: status %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("primeiro IP deveria estar limitado: status %d", code)
	}

	// Outro IP tem o próprio limitador
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("segundo IP: status %d", code)
	}
}

func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()

	// Parar a limpeza não desliga o limitador
	if !rl.allow("10.0.0.3") {
		t.Fatal("requisição dentro da rajada deveria passar")
	}
	if rl.allow("10.0.0.3") {
		t.Fatal("requisição acima da rajada deveria ser barrada")
	}
}
