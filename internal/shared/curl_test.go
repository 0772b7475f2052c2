package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantHeaders map[string]string
		wantCookie  string
		wantErr     bool
	}{
		{
			name:    "single header with single quotes",
			curlCmd: `curl -H 'Authorization: Bearer token123' https://music.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "single header with double quotes",
			curlCmd: `curl -H "Authorization: Bearer token123" https://music.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "multiple headers",
			curlCmd: `curl -H 'Content-Type: application/json' -H 'Authorization: Bearer token' https://music.example.com`,
			wantHeaders: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "cookie in -b flag with single quotes",
			curlCmd:     `curl -b 'session=abc123' https://music.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123",
			wantErr:     false,
		},
		{
			name:        "cookie in -b flag with double quotes",
			curlCmd:     `curl -b "session=abc123" https://music.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123",
			wantErr:     false,
		},
		{
			name:        "cookie in -H header",
			curlCmd:     `curl -H 'Cookie: session=abc123; token=xyz' https://music.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123; token=xyz",
			wantErr:     false,
		},
		{
			name:    "cookie header is excluded from regular headers",
			curlCmd: `curl -H 'Cookie: session=abc123' -H 'Authorization: Bearer token' https://music.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "session=abc123",
			wantErr:    false,
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: `curl -H 'Authorization: Bearer token' \
-H 'Content-Type: application/json' \
https://music.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
				"Content-Type":  "application/json",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "headers with spaces around colon",
			curlCmd: `curl -H 'Authorization : Bearer token' https://music.example.com`,
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "-b cookie takes precedence over -H cookie",
			curlCmd:     `curl -H 'Cookie: old=value' -b 'new=value' https://music.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "new=value",
			wantErr:     false,
		},
		{
			name:    "no headers or cookies",
			curlCmd: `curl https://music.example.com`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: "",
			wantErr: true,
		},
		{
			name: "complex real-world example",
			curlCmd: `curl 'https://music.example.com/rest/ping' \
  -H 'accept: */*' \
  -H 'accept-language: en-US,en;q=0.9' \
  -H 'x-auth-proxy: proxy_token_here' \
  -H 'content-type: application/json' \
  -H 'cookie: AUTH_SESSION=xyz; CONSENT=YES' \
  --data-raw '{"client":"tunebridge"}'`,
			wantHeaders: map[string]string{
				"accept":          "*/*",
				"accept-language": "en-US,en;q=0.9",
				"x-auth-proxy":    "proxy_token_here",
				"content-type":    "application/json",
			},
			wantCookie: "AUTH_SESSION=xyz; CONSENT=YES",
			wantErr:    false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCurlCommand([]byte(tc.curlCmd))

			if (err != nil) != tc.wantErr {
				t.Errorf("ParseCurlCommand() error = %v, wantErr %v", err, tc.wantErr)
				return
			}

			if tc.wantErr {
				return
			}

			if result == nil {
				t.Fatal("ParseCurlCommand() returned nil result")
			}

			if len(result.Headers) != len(tc.wantHeaders) {
				t.Errorf("ParseCurlCommand() headers count = %v, want %v", len(result.Headers), len(tc.wantHeaders))
			}

			for key, want := range tc.wantHeaders {
				if got := result.Headers[key]; got != want {
					t.Errorf("ParseCurlCommand() header[%s] = %v, want %v", key, got, want)
				}
			}

			if result.Cookie != tc.wantCookie {
				t.Errorf("ParseCurlCommand() cookie = %v, want %v", result.Cookie, tc.wantCookie)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("successful file parse", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "curl.sh")

		curlCmd := `curl -H 'Authorization: Bearer token123' -H 'Content-Type: application/json' https://music.example.com`
		if err := os.WriteFile(curlFile, []byte(curlCmd), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		result, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("ParseCurlFile() error = %v", err)
		}

		if len(result.Headers) != 2 {
			t.Errorf("ParseCurlFile() headers count = %v, want 2", len(result.Headers))
		}

		if result.Headers["Authorization"] != "Bearer token123" {
			t.Errorf("ParseCurlFile() Authorization = %v, want %v", result.Headers["Authorization"], "Bearer token123")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		_, err := ParseCurlFile("/nonexistent/file.sh")
		if err == nil {
			t.Error("ParseCurlFile() expected error for nonexistent file")
		}
	})

	t.Run("file with no valid headers", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "invalid.sh")

		if err := os.WriteFile(curlFile, []byte("curl https://music.example.com"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		_, err := ParseCurlFile(curlFile)
		if err == nil {
			t.Error("ParseCurlFile() expected error for file with no headers")
		}
	})
}

func TestCurlHeadersToHeadersRaw(t *testing.T) {
	t.Run("cookie only", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{}, Cookie: "session=abc123"}
		if got := headers.ToHeadersRaw(); got != "cookie: session=abc123" {
			t.Errorf("ToHeadersRaw() = %v, want cookie line", got)
		}
	})

	t.Run("empty headers", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{}}
		if got := headers.ToHeadersRaw(); got != "" {
			t.Errorf("ToHeadersRaw() = %v, want empty string", got)
		}
	})

	t.Run("headers only", func(t *testing.T) {
		headers := &CurlHeaders{
			Headers: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer token",
			},
		}
		got := headers.ToHeadersRaw()

		if !strings.Contains(got, "Content-Type: application/json") {
			t.Errorf("ToHeadersRaw() missing Content-Type header")
		}
		if !strings.Contains(got, "Authorization: Bearer token") {
			t.Errorf("ToHeadersRaw() missing Authorization header")
		}
		if strings.Contains(got, "cookie:") {
			t.Errorf("ToHeadersRaw() should not contain cookie line")
		}
	})

	t.Run("headers and cookie", func(t *testing.T) {
		headers := &CurlHeaders{
			Headers: map[string]string{"Authorization": "Bearer token"},
			Cookie:  "session=abc123",
		}
		got := headers.ToHeadersRaw()

		if !strings.Contains(got, "Authorization: Bearer token") {
			t.Errorf("ToHeadersRaw() missing Authorization header")
		}
		if !strings.Contains(got, "cookie: session=abc123") {
			t.Errorf("ToHeadersRaw() missing cookie line")
		}
	})
}
