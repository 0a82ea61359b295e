package models

import "testing"

func TestValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleSystem, true},
		{RoleUser, true},
		{RoleAssistant, true},
		{"", false},
		{"tool", false},
		{"User", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.want {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestModelFromName_Known(t *testing.T) {
	m := ModelFromName("deepseek-r1:7b")
	if m.Name != "deepseek-r1:7b" {
		t.Errorf("Name = %s, want deepseek-r1:7b", m.Name)
	}
	if m.Description == "" {
		t.Error("known model should carry a description")
	}
}

func TestModelFromName_Unknown(t *testing.T) {
	m := ModelFromName("my-custom-model:latest")
	if m.Name != "my-custom-model:latest" {
		t.Errorf("Name = %s, want my-custom-model:latest", m.Name)
	}
	if m.Description != "" {
		t.Errorf("unknown model Description = %q, want empty", m.Description)
	}
}

func TestAllModels_ContainsDefault(t *testing.T) {
	found := false
	for _, m := range AllModels() {
		if m.Name == DefaultModel.Name {
			found = true
		}
	}
	if !found {
		t.Errorf("AllModels() does not contain default %s", DefaultModel.Name)
	}
}

func TestMessageConstructors(t *testing.T) {
	if m := SystemMessage("a"); m.Role != RoleSystem || m.Content != "a" {
		t.Errorf("SystemMessage = %+v", m)
	}
	if m := UserMessage("b"); m.Role != RoleUser || m.Content != "b" {
		t.Errorf("UserMessage = %+v", m)
	}
	if m := AssistantMessage("c"); m.Role != RoleAssistant || m.Content != "c" {
		t.Errorf("AssistantMessage = %+v", m)
	}
}

func TestModelInfo_SizeHuman(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{5 << 30, "5.0 GB"},
		{512 << 20, "512 MB"},
		{100, "100 B"},
		{0, "unknown"},
	}

	for _, tt := range tests {
		info := ModelInfo{Size: tt.size}
		if got := info.SizeHuman(); got != tt.want {
			t.Errorf("SizeHuman(%d) = %s, want %s", tt.size, got, tt.want)
		}
	}
}
