package open

import (
	"reflect"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+12", "diary.txt"}},
		{"/usr/bin/vim", []string{"/usr/bin/vim", "+12", "diary.txt"}},
		{"code", []string{"code", "--goto", "diary.txt:12"}},
		{"less", []string{"less", "+12", "diary.txt"}},
		{"nano", []string{"nano", "+12", "diary.txt"}},
		{"ed", []string{"ed", "diary.txt"}},
	}
	for _, tt := range tests {
		cmd := editorCommand(tt.editor, "diary.txt", 12)
		if !reflect.DeepEqual(cmd.Args, tt.want) {
			t.Errorf("%s: args = %v, want %v", tt.editor, cmd.Args, tt.want)
		}
	}
}

func TestOpenAtMissingFile(t *testing.T) {
	if err := OpenAt("/nonexistent/diary.txt", 1); err == nil {
		t.Fatal("expected error for missing file")
	}
}
