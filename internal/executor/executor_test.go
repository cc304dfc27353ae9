package executor

import (
	"errors"
	"testing"
)

func TestSystemExecutor_Execute(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("echo command", func(t *testing.T) {
		output, err := exec.Execute("echo", "hello")
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if string(output) != "hello\n" {
			t.Errorf("expected 'hello\\n', got '%s'", string(output))
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.Execute("nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
	})
}

func TestSystemExecutor_ExecuteInput(t *testing.T) {
	exec := NewSystemExecutor()

	output, err := exec.ExecuteInput("job line\n", "cat")
	if err != nil {
		t.Fatalf("ExecuteInput failed: %v", err)
	}
	if string(output) != "job line\n" {
		t.Errorf("expected stdin echoed back, got '%s'", string(output))
	}
}

func TestSystemExecutor_LookPath(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("find sh", func(t *testing.T) {
		path, err := exec.LookPath("sh")
		if err != nil {
			t.Fatalf("LookPath failed: %v", err)
		}
		if path == "" {
			t.Error("expected non-empty path")
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.LookPath("nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
	})
}

func TestMockExecutor(t *testing.T) {
	t.Run("records calls with input", func(t *testing.T) {
		mock := &MockExecutor{}

		if _, err := mock.Execute("v-list-user", "alice", "plain"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := mock.ExecuteInput("run me\n", "at", "now"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		if len(mock.Calls) != 2 {
			t.Fatalf("expected 2 recorded calls, got %d", len(mock.Calls))
		}
		if mock.Calls[0].Name != "v-list-user" || mock.Calls[0].Input != "" {
			t.Errorf("unexpected first call: %+v", mock.Calls[0])
		}
		if mock.Calls[1].Input != "run me\n" {
			t.Errorf("expected stdin recorded, got %+v", mock.Calls[1])
		}
	})

	t.Run("custom execute function", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("boom"), errors.New("exit status 1")
			},
		}
		output, err := mock.Execute("anything")
		if err == nil || string(output) != "boom" {
			t.Errorf("expected custom result, got %s / %v", output, err)
		}
	})
}
