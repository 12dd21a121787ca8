package models

import "testing"

func TestNews_GetUserID(t *testing.T) {
	n := &News{UserID: 42}
	if got := n.GetUserID(); got != 42 {
		t.Errorf("GetUserID() = %d, want 42", got)
	}
}

func TestNews_HasFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"no file", "", false},
		{"with file", "report.pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &News{FileName: tt.file}
			if got := n.HasFile(); got != tt.want {
				t.Errorf("HasFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNews_CategoryName(t *testing.T) {
	n := &News{}
	if got := n.CategoryName(); got != "" {
		t.Errorf("CategoryName() = %q, want empty", got)
	}
	n.Category = &Category{Name: "work"}
	if got := n.CategoryName(); got != "work" {
		t.Errorf("CategoryName() = %q, want work", got)
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{User{}.TableName(), "users"},
		{Category{}.TableName(), "category"},
		{Theme{}.TableName(), "themes"},
		{News{}.TableName(), "news"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("TableName() = %q, want %q", tt.got, tt.want)
		}
	}
}
