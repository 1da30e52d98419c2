package gormstore

import (
	"reflect"
	"strings"
	"testing"

	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

func segs(t *testing.T, path string) []string {
	t.Helper()
	s, err := remote.Split(path)
	if err != nil {
		t.Fatalf("Split(%q): %v", path, err)
	}
	return s
}

func TestAncestorPaths(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", []string{}},
		{"appointments", []string{"appointments"}},
		{"users/clients/u1", []string{"users", "users/clients", "users/clients/u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := ancestorPaths(segs(t, tt.path))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ancestorPaths(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPickAncestor(t *testing.T) {
	at := func(p string) Node { return Node{Path: p, Value: "{}"} }

	tests := []struct {
		name    string
		rows    []Node
		want    string
		wantErr bool
	}{
		{"none", nil, "", false},
		{"one", []Node{at("users/clients")}, "users/clients", false},
		{"nested", []Node{at("users"), at("users/clients")}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickAncestor(segs(t, "users/clients/u1"), tt.rows)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "nested nodes") {
					t.Fatalf("expected nested nodes error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("pickAncestor: %v", err)
			}
			if (got == nil) != (tt.want == "") || (got != nil && got.Path != tt.want) {
				t.Fatalf("pickAncestor = %+v, want %q", got, tt.want)
			}
		})
	}
}

func TestReadAncestor(t *testing.T) {
	node := Node{Path: "users/clients", Value: `{"u1":{"email":"ana@example.com","isActive":true}}`}

	tests := []struct {
		path string
		want any
	}{
		{"users/clients", map[string]any{"u1": map[string]any{"email": "ana@example.com", "isActive": true}}},
		{"users/clients/u1/email", "ana@example.com"},
		{"users/clients/u2", nil},
		{"users/clients/u1/email/deeper", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := readAncestor(node, segs(t, tt.path))
			if err != nil {
				t.Fatalf("readAncestor: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("readAncestor(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWriteAncestor(t *testing.T) {
	tests := []struct {
		name  string
		value string
		path  string
		v     any
		want  any
	}{
		{
			name:  "set leaf",
			value: `{"a":{"status":"PENDING"}}`,
			path:  "appointments/a/status",
			v:     "CONFIRMED",
			want:  map[string]any{"a": map[string]any{"status": "CONFIRMED"}},
		},
		{
			name:  "add sibling",
			value: `{"a":{"status":"PENDING"}}`,
			path:  "appointments/b",
			v:     map[string]any{"status": "PENDING"},
			want: map[string]any{
				"a": map[string]any{"status": "PENDING"},
				"b": map[string]any{"status": "PENDING"},
			},
		},
		{
			name:  "delete one of two",
			value: `{"a":{"status":"PENDING"},"b":{"status":"CANCELLED"}}`,
			path:  "appointments/b",
			v:     nil,
			want:  map[string]any{"a": map[string]any{"status": "PENDING"}},
		},
		{
			name:  "delete last child empties the node",
			value: `{"a":{"status":"PENDING"}}`,
			path:  "appointments/a/status",
			v:     nil,
			want:  nil,
		},
		{
			name:  "replace the node itself",
			value: `{"a":{"status":"PENDING"}}`,
			path:  "appointments",
			v:     map[string]any{"z": true},
			want:  map[string]any{"z": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := writeAncestor(Node{Path: "appointments", Value: tt.value}, segs(t, tt.path), tt.v)
			if err != nil {
				t.Fatalf("writeAncestor: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("writeAncestor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	rows := []Node{
		{Path: "users/admins/x1", Value: `{"role":"BUSINESS_ADMIN"}`},
		{Path: "users/clients/u1", Value: `{"email":"ana@example.com"}`},
		{Path: "users/clients/u2", Value: `{"email":"bea@example.com"}`},
	}

	tests := []struct {
		name string
		path string
		rows []Node
		want any
	}{
		{"no rows", "users", nil, nil},
		{
			name: "collection",
			path: "users/clients",
			rows: rows[1:],
			want: map[string]any{
				"u1": map[string]any{"email": "ana@example.com"},
				"u2": map[string]any{"email": "bea@example.com"},
			},
		},
		{
			name: "root",
			path: "",
			rows: rows,
			want: map[string]any{"users": map[string]any{
				"admins": map[string]any{"x1": map[string]any{"role": "BUSINESS_ADMIN"}},
				"clients": map[string]any{
					"u1": map[string]any{"email": "ana@example.com"},
					"u2": map[string]any{"email": "bea@example.com"},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assemble(segs(t, tt.path), tt.rows)
			if err != nil {
				t.Fatalf("assemble: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("assemble = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorruptNodeFails(t *testing.T) {
	bad := Node{Path: "appointments", Value: `{"a":`}

	if _, err := readAncestor(bad, segs(t, "appointments/a")); err == nil {
		t.Fatalf("readAncestor accepted corrupt node")
	}
	if _, err := writeAncestor(bad, segs(t, "appointments/a"), "x"); err == nil {
		t.Fatalf("writeAncestor accepted corrupt node")
	}
	if _, err := assemble(nil, []Node{bad}); err == nil {
		t.Fatalf("assemble accepted corrupt node")
	}
}

func TestLikePrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"appointments", "appointments/%"},
		{"users/clients", "users/clients/%"},
		{"a_b/c%d", `a\_b/c\%d/%`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := likePrefix(segs(t, tt.path)); got != tt.want {
				t.Fatalf("likePrefix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
