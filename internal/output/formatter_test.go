package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := SetWriter(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestJSON(t *testing.T) {
	buf := capture(t)

	data := map[string]interface{}{"user": "alice", "domains": []string{"site1.com"}}
	if err := JSON(data); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["user"] != "alice" {
		t.Errorf("unexpected decoded value: %+v", decoded)
	}
}

func TestTable(t *testing.T) {
	t.Run("columns are aligned", func(t *testing.T) {
		buf := capture(t)

		Table([]string{"USER", "DOMAINS"}, [][]string{
			{"alice", "site1.com"},
			{"bob", "site2.com,www.site2.com"},
		})

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header, separator and two rows, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[0], "USER ") {
			t.Errorf("unexpected header: %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "-----") {
			t.Errorf("unexpected separator: %q", lines[1])
		}
		if !strings.Contains(lines[3], "bob") {
			t.Errorf("unexpected row: %q", lines[3])
		}
	})

	t.Run("no headers prints nothing", func(t *testing.T) {
		buf := capture(t)
		Table(nil, [][]string{{"x"}})
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("short rows are padded", func(t *testing.T) {
		buf := capture(t)
		Table([]string{"A", "B"}, [][]string{{"only"}})
		if !strings.Contains(buf.String(), "only") {
			t.Errorf("row missing: %q", buf.String())
		}
	})
}

func TestMessages(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(string, ...interface{})
		marker string
	}{
		{"success", Success, "✓"},
		{"error", Error, "✗"},
		{"warn", Warn, "!"},
		{"info", Info, "→"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := capture(t)
			tc.fn("message for %s", "alice")
			out := buf.String()
			if !strings.Contains(out, tc.marker) {
				t.Errorf("expected marker %q in %q", tc.marker, out)
			}
			if !strings.Contains(out, "message for alice") {
				t.Errorf("expected formatted message in %q", out)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	buf := capture(t)
	Print("plain %d", 7)
	if buf.String() != "plain 7\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
